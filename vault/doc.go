/*
Vault contract is a standalone contract custodying native GAS on behalf of
its depositors.

Every GAS transfer to the contract account is credited to the sender's
tracked deposit and to the running totalReceived counter. A depositor can
take its GAS back at any time with Withdraw, limited by its own tracked
deposit. The owner set at deployment can additionally pay out arbitrary
amounts from the pooled contract balance with SafeTransfer.

SafeTransfer deliberately spends from the pooled GAS balance without
reducing any deposit entry or totalReceived. After the owner has ever used
it, totalReceived no longer reconciles against the actual contract balance
and depositors may hold tracked deposits that the pool can no longer cover
in full. Integrations relying on full depositor coverage must account for
this asymmetry.

Withdraw decrements the accounting entries before the GAS transfer is
attempted. This ordering is an invariant: a recipient re-entering the
contract during the transfer observes the already reduced balance and
cannot withdraw the same deposit twice.

# Contract notifications

EtherReceived notification. It is produced on every credited GAS transfer,
with method "receive" for plain transfers and "deposit" for transfers
initiated through the Deposit method.

	EtherReceived:
	  - name: sender
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: method
	    type: String

EtherSent notification. It is produced on every successful outbound payout,
both Withdraw and SafeTransfer.

	EtherSent:
	  - name: recipient
	    type: Hash160
	  - name: amount
	    type: Integer

FallbackCalled notification. It is produced instead of EtherReceived when an
incoming GAS transfer carries an unrecognized data payload. The credit
accounting is the same, the raw payload is attached.

	FallbackCalled:
	  - name: sender
	    type: Hash160
	  - name: value
	    type: Integer
	  - name: data
	    type: ByteArray
*/
package vault

package tests

import (
	"math/big"
	"path"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/vault-contract/common"
	"github.com/nspcc-dev/vault-contract/vault"
	"github.com/stretchr/testify/require"
)

const oneGAS = int64(1_0000_0000)

func receivedEvent(sender util.Uint160, amount int64, method string) stackitem.Item {
	return stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(sender.BytesBE()),
		stackitem.NewBigInteger(big.NewInt(amount)),
		stackitem.NewByteArray([]byte(method)),
	})
}

func sentEvent(recipient util.Uint160, amount int64) stackitem.Item {
	return stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(recipient.BytesBE()),
		stackitem.NewBigInteger(big.NewInt(amount)),
	})
}

func TestVaultDeploy(t *testing.T) {
	e := newExecutor(t)
	owner := e.NewAccount(t)

	c := neotest.CompileFile(t, e.CommitteeHash, vaultPath, path.Join(vaultPath, "config.yml"))
	e.DeployContractCheckFAULT(t, c, []any{[]byte{1, 2, 3}},
		"incorrect length of owner script hash")

	e.DeployContract(t, c, []any{owner.ScriptHash()})

	inv := e.CommitteeInvoker(c.Hash)
	inv.Invoke(t, owner.ScriptHash().BytesBE(), "owner")
	inv.Invoke(t, common.Version, "version")
	inv.Invoke(t, int64(0), "getBalance")
	inv.Invoke(t, int64(0), "totalReceived")
}

func TestVaultReceive(t *testing.T) {
	c, _ := newVaultInvoker(t)

	depositor := c.NewAccount(t)

	aer := transferGAS(t, c.Executor, depositor, c.Hash, oneGAS, nil)
	require.Equal(t, 2, len(aer.Events))
	require.Equal(t, "EtherReceived", aer.Events[1].Name)
	require.Equal(t, receivedEvent(depositor.ScriptHash(), oneGAS, "receive"),
		aer.Events[1].Item)

	c.Invoke(t, oneGAS, "getBalance")
	c.Invoke(t, oneGAS, "totalReceived")
	c.Invoke(t, oneGAS, "depositOf", depositor.ScriptHash())
	c.Invoke(t, true, "hasDeposited", depositor.ScriptHash())

	// Credits accumulate per sender.
	transferGAS(t, c.Executor, depositor, c.Hash, oneGAS/2, nil)
	c.Invoke(t, oneGAS+oneGAS/2, "depositOf", depositor.ScriptHash())
	c.Invoke(t, oneGAS+oneGAS/2, "totalReceived")
}

func TestVaultFallback(t *testing.T) {
	c, _ := newVaultInvoker(t)

	depositor := c.NewAccount(t)
	payload := []byte(uuid.NewString())

	aer := transferGAS(t, c.Executor, depositor, c.Hash, oneGAS, payload)
	require.Equal(t, 2, len(aer.Events))
	require.Equal(t, "FallbackCalled", aer.Events[1].Name)
	require.Equal(t, stackitem.NewArray([]stackitem.Item{
		stackitem.NewByteArray(depositor.ScriptHash().BytesBE()),
		stackitem.NewBigInteger(big.NewInt(oneGAS)),
		stackitem.NewByteArray(payload),
	}), aer.Events[1].Item)

	// The accounting effect is the same as for a plain transfer.
	c.Invoke(t, oneGAS, "depositOf", depositor.ScriptHash())
	c.Invoke(t, oneGAS, "totalReceived")
	c.Invoke(t, true, "hasDeposited", depositor.ScriptHash())
}

func TestVaultOnNEP17PaymentCaller(t *testing.T) {
	c, _ := newVaultInvoker(t)

	acc := c.NewAccount(t)
	cAcc := c.WithSigners(acc)
	cAcc.InvokeFail(t, "only GAS can be accepted", "onNEP17Payment",
		acc.ScriptHash(), oneGAS, nil)
}

func TestVaultDeposit(t *testing.T) {
	c, _ := newVaultInvoker(t)

	depositor := c.NewAccount(t)
	cDep := c.WithSigners(depositor)

	h := cDep.Invoke(t, stackitem.Null{}, "deposit", depositor.ScriptHash(), oneGAS)
	aer := cDep.CheckHalt(t, h)
	require.Equal(t, 2, len(aer.Events))
	require.Equal(t, "EtherReceived", aer.Events[1].Name)
	require.Equal(t, receivedEvent(depositor.ScriptHash(), oneGAS, "deposit"),
		aer.Events[1].Item)

	c.Invoke(t, oneGAS, "getBalance")
	c.Invoke(t, oneGAS, "depositOf", depositor.ScriptHash())
	c.Invoke(t, oneGAS, "totalReceived")

	cDep.InvokeFail(t, vault.ErrNonPositiveAmount, "deposit",
		depositor.ScriptHash(), int64(0))

	stranger := c.NewAccount(t)
	c.WithSigners(stranger).InvokeFail(t, common.ErrOwnerWitnessFailed, "deposit",
		depositor.ScriptHash(), oneGAS)
}

func TestVaultWithdraw(t *testing.T) {
	c, _ := newVaultInvoker(t)

	depositor := c.NewAccount(t)
	other := c.NewAccount(t)
	cDep := c.WithSigners(depositor)

	cDep.InvokeFail(t, vault.ErrInsufficientBalance+": requested 100000000, available 0",
		"withdraw", depositor.ScriptHash(), oneGAS)

	// Tracked deposit is a sum of all credited transfers.
	cDep.Invoke(t, stackitem.Null{}, "deposit", depositor.ScriptHash(), int64(30_000_000))
	transferGAS(t, c.Executor, depositor, c.Hash, 70_000_000, nil)
	transferGAS(t, c.Executor, other, c.Hash, oneGAS, nil)
	c.Invoke(t, oneGAS, "depositOf", depositor.ScriptHash())
	c.Invoke(t, 2*oneGAS, "totalReceived")

	cDep.InvokeFail(t, vault.ErrNonPositiveAmount, "withdraw",
		depositor.ScriptHash(), int64(0))
	c.WithSigners(other).InvokeFail(t, common.ErrOwnerWitnessFailed, "withdraw",
		depositor.ScriptHash(), int64(10_000_000))

	h := cDep.Invoke(t, stackitem.Null{}, "withdraw", depositor.ScriptHash(), int64(40_000_000))
	aer := cDep.CheckHalt(t, h)
	require.Equal(t, 2, len(aer.Events))
	require.Equal(t, "EtherSent", aer.Events[1].Name)
	require.Equal(t, sentEvent(depositor.ScriptHash(), int64(40_000_000)), aer.Events[1].Item)

	c.Invoke(t, int64(60_000_000), "depositOf", depositor.ScriptHash())
	c.Invoke(t, oneGAS+60_000_000, "totalReceived")
	c.Invoke(t, oneGAS+60_000_000, "getBalance")

	// A failed withdrawal leaves the accounting untouched.
	cDep.InvokeFail(t, vault.ErrInsufficientBalance+": requested 70000000, available 60000000",
		"withdraw", depositor.ScriptHash(), int64(70_000_000))
	c.Invoke(t, int64(60_000_000), "depositOf", depositor.ScriptHash())
	c.Invoke(t, oneGAS+60_000_000, "totalReceived")

	// Withdrawing the rest drains the entry to zero, the other depositor
	// is not affected.
	cDep.Invoke(t, stackitem.Null{}, "withdraw", depositor.ScriptHash(), int64(60_000_000))
	c.Invoke(t, int64(0), "depositOf", depositor.ScriptHash())
	c.Invoke(t, false, "hasDeposited", depositor.ScriptHash())
	c.Invoke(t, oneGAS, "depositOf", other.ScriptHash())
	c.Invoke(t, oneGAS, "totalReceived")
	c.Invoke(t, oneGAS, "getBalance")
}

func TestVaultWithdrawByOwner(t *testing.T) {
	c, owner := newVaultInvoker(t)

	cOwner := c.WithSigners(owner)
	cOwner.Invoke(t, stackitem.Null{}, "deposit", owner.ScriptHash(), oneGAS)

	h := cOwner.Invoke(t, stackitem.Null{}, "withdraw", owner.ScriptHash(), oneGAS)
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, 2, len(aer.Events))
	require.Equal(t, "EtherSent", aer.Events[1].Name)
	require.Equal(t, sentEvent(owner.ScriptHash(), oneGAS), aer.Events[1].Item)

	c.Invoke(t, int64(0), "getBalance")
	c.Invoke(t, int64(0), "totalReceived")
}

func TestVaultSafeTransfer(t *testing.T) {
	c, owner := newVaultInvoker(t)

	depositor := c.NewAccount(t)
	recipient := c.NewAccount(t)
	cOwner := c.WithSigners(owner)

	c.WithSigners(depositor).InvokeFail(t, vault.ErrUnauthorized, "safeTransfer",
		recipient.ScriptHash(), oneGAS)
	cOwner.InvokeFail(t, vault.ErrZeroAddress, "safeTransfer",
		util.Uint160{}, oneGAS)
	cOwner.InvokeFail(t, vault.ErrNonPositiveAmount, "safeTransfer",
		recipient.ScriptHash(), int64(0))
	cOwner.InvokeFail(t, vault.ErrInsufficientBalance+": requested 100000000, available 0",
		"safeTransfer", recipient.ScriptHash(), oneGAS)

	transferGAS(t, c.Executor, depositor, c.Hash, oneGAS, nil)

	h := cOwner.Invoke(t, stackitem.Null{}, "safeTransfer", recipient.ScriptHash(), int64(40_000_000))
	aer := cOwner.CheckHalt(t, h)
	require.Equal(t, 2, len(aer.Events))
	require.Equal(t, "EtherSent", aer.Events[1].Name)
	require.Equal(t, sentEvent(recipient.ScriptHash(), int64(40_000_000)), aer.Events[1].Item)

	// The payout spends from the pooled balance only: the depositor's
	// entry and the running total still claim the full GAS amount.
	c.Invoke(t, int64(60_000_000), "getBalance")
	c.Invoke(t, oneGAS, "depositOf", depositor.ScriptHash())
	c.Invoke(t, oneGAS, "totalReceived")
	c.Invoke(t, false, "hasDeposited", recipient.ScriptHash())

	// The pool can no longer cover the tracked deposit in full, the
	// failed withdrawal is rolled back completely.
	cDep := c.WithSigners(depositor)
	cDep.InvokeFail(t, vault.ErrTransferFailed, "withdraw",
		depositor.ScriptHash(), oneGAS)
	c.Invoke(t, oneGAS, "depositOf", depositor.ScriptHash())
	c.Invoke(t, oneGAS, "totalReceived")
	c.Invoke(t, int64(60_000_000), "getBalance")

	cDep.Invoke(t, stackitem.Null{}, "withdraw", depositor.ScriptHash(), int64(60_000_000))
	c.Invoke(t, int64(0), "getBalance")
}

func TestVaultSafeTransferRefusingRecipient(t *testing.T) {
	c, owner := newVaultInvoker(t)

	refuserHash := deployRefuserContract(t, c.Executor)

	depositor := c.NewAccount(t)
	transferGAS(t, c.Executor, depositor, c.Hash, oneGAS, nil)

	cOwner := c.WithSigners(owner)
	cOwner.InvokeFail(t, "refused", "safeTransfer", refuserHash, oneGAS)

	c.Invoke(t, oneGAS, "getBalance")
	c.Invoke(t, oneGAS, "depositOf", depositor.ScriptHash())
}

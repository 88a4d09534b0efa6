package vault

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/vault-contract/common"
)

const (
	ownerKey         = "o"
	totalReceivedKey = "t"
	depositPrefix    = "d"

	methodReceive = "receive"
	methodDeposit = "deposit"

	// depositNotification marks GAS transfers initiated by the Deposit
	// method, so that onNEP17Payment can tag the credit accordingly.
	depositNotification = "\x76\x01"
)

// Error messages thrown by the contract. Each failure kind has a stable
// prefix so that integrations can distinguish causes programmatically.
const (
	// ErrInsufficientBalance is thrown by Withdraw when the requested
	// amount exceeds the caller's tracked deposit and by SafeTransfer
	// when it exceeds the contract's actual GAS balance. The message
	// carries both the requested and the available amount.
	ErrInsufficientBalance = "insufficient balance"
	// ErrUnauthorized is thrown by owner-gated methods when the
	// transaction lacks the owner's witness.
	ErrUnauthorized = "unauthorized"
	// ErrZeroAddress is thrown by SafeTransfer on a nil or all-zero
	// recipient script hash.
	ErrZeroAddress = "zero recipient address"
	// ErrTransferFailed is thrown when an outbound GAS transfer
	// returns false.
	ErrTransferFailed = "failed to transfer GAS"
	// ErrNonPositiveAmount is thrown on a zero or negative amount
	// argument.
	ErrNonPositiveAmount = "non positive amount"
)

// zeroAddress is an all-zero script hash, an invalid payout recipient.
var zeroAddress = make([]byte, interop.Hash160Len)

// nolint:deadcode,unused
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		panic("contract update is not supported")
	}

	args := data.(struct {
		owner interop.Hash160
	})

	if len(args.owner) != interop.Hash160Len {
		panic("incorrect length of owner script hash")
	}

	ctx := storage.GetContext()
	storage.Put(ctx, ownerKey, args.owner)

	runtime.Log("vault contract initialized")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Any incoming GAS transfer is credited to the sender's tracked deposit and
// to the running total. Plain transfers produce EtherReceived tagged
// "receive", transfers initiated through Deposit produce EtherReceived
// tagged "deposit" and transfers carrying any other data payload route to
// the fallback path producing FallbackCalled with the raw payload.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !common.BytesEqual(caller, interop.Hash160(gas.Hash)) {
		panic("onNEP17Payment: only GAS can be accepted")
	}

	if amount <= 0 {
		panic("onNEP17Payment: " + ErrNonPositiveAmount)
	}

	ctx := storage.GetContext()
	credit(ctx, from, amount)

	payload := data.([]byte)
	switch {
	case len(payload) == 0:
		runtime.Notify("EtherReceived", from, amount, methodReceive)
	case common.BytesEqual(payload, []byte(depositNotification)):
		runtime.Notify("EtherReceived", from, amount, methodDeposit)
	default:
		runtime.Notify("FallbackCalled", from, amount, payload)
	}
}

// Deposit transfers GAS from the user account to the vault and credits the
// user's tracked deposit. It can be invoked only by the owner of the wallet.
// The accounting effect is the same as a plain GAS transfer to the vault,
// only the EtherReceived notification is tagged "deposit".
func Deposit(from interop.Hash160, amount int) {
	common.CheckOwnerWitness(from)

	if amount <= 0 {
		panic("deposit: " + ErrNonPositiveAmount)
	}

	to := runtime.GetExecutingScriptHash()

	transferred := gas.Transfer(from, to, amount, []byte(depositNotification))
	if !transferred {
		panic("deposit: " + ErrTransferFailed)
	}
}

// Withdraw debits the user's tracked deposit and transfers the requested
// amount of GAS back to the user. It can be invoked only by the owner of the
// wallet and panics if the amount exceeds the user's deposit.
//
// Produces EtherSent notification.
func Withdraw(user interop.Hash160, amount int) {
	common.CheckOwnerWitness(user)

	if amount <= 0 {
		panic("withdraw: " + ErrNonPositiveAmount)
	}

	ctx := storage.GetContext()

	available := depositOf(ctx, user)
	if available < amount {
		panic("withdraw: " + ErrInsufficientBalance +
			": requested " + std.Itoa(amount, 10) +
			", available " + std.Itoa(available, 10))
	}

	// The deposit entry and the running total are decremented before GAS
	// leaves the contract: a re-entering recipient observes the already
	// reduced balance.
	storage.Put(ctx, depositKey(user), available-amount)
	storage.Put(ctx, totalReceivedKey, totalReceived(ctx)-amount)

	transferred := gas.Transfer(runtime.GetExecutingScriptHash(), user, amount, nil)
	if !transferred {
		panic("withdraw: " + ErrTransferFailed)
	}

	runtime.Notify("EtherSent", user, amount)
}

// SafeTransfer transfers GAS from the vault to an arbitrary recipient. It can
// be invoked only by the vault owner and is limited by the contract's actual
// GAS balance, not by any tracked deposit. Neither deposit entries nor the
// running total are changed, see the package documentation for the
// consequences.
//
// Produces EtherSent notification.
func SafeTransfer(to interop.Hash160, amount int) {
	ctx := storage.GetReadOnlyContext()

	if !runtime.CheckWitness(contractOwner(ctx)) {
		panic("safeTransfer: " + ErrUnauthorized)
	}

	if len(to) != interop.Hash160Len || common.BytesEqual(to, zeroAddress) {
		panic("safeTransfer: " + ErrZeroAddress)
	}

	if amount <= 0 {
		panic("safeTransfer: " + ErrNonPositiveAmount)
	}

	self := runtime.GetExecutingScriptHash()

	balance := gas.BalanceOf(self)
	if balance < amount {
		panic("safeTransfer: " + ErrInsufficientBalance +
			": requested " + std.Itoa(amount, 10) +
			", available " + std.Itoa(balance, 10))
	}

	transferred := gas.Transfer(self, to, amount, nil)
	if !transferred {
		panic("safeTransfer: " + ErrTransferFailed)
	}

	runtime.Notify("EtherSent", to, amount)
}

// GetBalance returns the actual GAS balance held by the contract account.
func GetBalance() int {
	return gas.BalanceOf(runtime.GetExecutingScriptHash())
}

// HasDeposited returns true if the specified account has a non-zero tracked
// deposit.
func HasDeposited(holder interop.Hash160) bool {
	return depositOf(storage.GetReadOnlyContext(), holder) > 0
}

// DepositOf returns the tracked deposit of the specified account.
func DepositOf(holder interop.Hash160) int {
	return depositOf(storage.GetReadOnlyContext(), holder)
}

// TotalReceived returns the running sum of all credited GAS minus all GAS
// debited through Withdraw. SafeTransfer payouts are not reflected in it.
func TotalReceived() int {
	return totalReceived(storage.GetReadOnlyContext())
}

// Owner returns the script hash of the vault owner set at deployment.
func Owner() interop.Hash160 {
	return contractOwner(storage.GetReadOnlyContext())
}

// Version returns version of the contract.
func Version() int {
	return common.Version
}

// credit increases the holder's tracked deposit and the running total. An
// entry is created on the first credit and never deleted afterwards, only
// decremented.
func credit(ctx storage.Context, holder interop.Hash160, amount int) {
	storage.Put(ctx, depositKey(holder), depositOf(ctx, holder)+amount)
	storage.Put(ctx, totalReceivedKey, totalReceived(ctx)+amount)
}

func depositKey(holder interop.Hash160) []byte {
	return append([]byte(depositPrefix), holder...)
}

func depositOf(ctx storage.Context, holder interop.Hash160) int {
	val := storage.Get(ctx, depositKey(holder))
	if val != nil {
		return val.(int)
	}

	return 0
}

func totalReceived(ctx storage.Context) int {
	val := storage.Get(ctx, totalReceivedKey)
	if val != nil {
		return val.(int)
	}

	return 0
}

func contractOwner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

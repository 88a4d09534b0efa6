package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

const (
	vaultPath   = "../vault"
	refuserPath = "../internal/testcontracts/refuser"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func deployVaultContract(t *testing.T, e *neotest.Executor, owner util.Uint160) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, vaultPath, path.Join(vaultPath, "config.yml"))
	e.DeployContract(t, c, []any{owner})
	return c.Hash
}

func deployRefuserContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, refuserPath, path.Join(refuserPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

// newVaultInvoker deploys the vault contract on a fresh chain and returns its
// invoker together with the owner account set at deployment.
func newVaultInvoker(t *testing.T) (*neotest.ContractInvoker, neotest.Signer) {
	e := newExecutor(t)
	owner := e.NewAccount(t)
	h := deployVaultContract(t, e, owner.ScriptHash())
	return e.CommitteeInvoker(h), owner
}

// transferGAS sends amount of GAS from the account to the specified recipient
// with optional data attached and returns the execution result.
func transferGAS(t *testing.T, e *neotest.Executor, from neotest.Signer, to util.Uint160, amount int64, data any) *state.AppExecResult {
	gasHash, err := e.Chain.GetNativeContractScriptHash(nativenames.Gas)
	require.NoError(t, err)

	inv := e.NewInvoker(gasHash, from)
	h := inv.Invoke(t, true, "transfer", from.ScriptHash(), to, amount, data)
	return inv.CheckHalt(t, h)
}

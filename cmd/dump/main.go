package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/vault-contract/rpc/vault"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractHash := flag.String("contract", "", "LE script hash of the GAS Vault contract")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractHash == "":
		log.Fatal("missing vault contract hash")
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(*contractHash, "0x"))
	if err != nil {
		log.Fatal(fmt.Errorf("decode contract hash: %w", err))
	}

	err = _dump(*neoRPCEndpoint, h, flag.Args())
	if err != nil {
		log.Fatal(err)
	}
}

// _dump prints accounting state of the vault contract: owner, running total,
// actual GAS balance and tracked deposits of the optionally listed holder
// addresses.
func _dump(neoBlockchainRPCEndpoint string, h util.Uint160, holders []string) error {
	c, err := rpcclient.New(context.Background(), neoBlockchainRPCEndpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init RPC client: %w", err)
	}

	defer c.Close()

	reader := vault.NewReader(invoker.New(c, nil), h)

	owner, err := reader.Owner()
	if err != nil {
		return fmt.Errorf("read owner: %w", err)
	}

	totalReceived, err := reader.TotalReceived()
	if err != nil {
		return fmt.Errorf("read totalReceived: %w", err)
	}

	balance, err := reader.GetBalance()
	if err != nil {
		return fmt.Errorf("read GAS balance: %w", err)
	}

	fmt.Printf("owner:         %s\n", address.Uint160ToString(owner))
	fmt.Printf("totalReceived: %s\n", totalReceived)
	fmt.Printf("GAS balance:   %s\n", balance)

	for _, holder := range holders {
		acc, err := address.StringToUint160(holder)
		if err != nil {
			return fmt.Errorf("decode holder address '%s': %w", holder, err)
		}

		deposit, err := reader.DepositOf(acc)
		if err != nil {
			return fmt.Errorf("read deposit of '%s': %w", holder, err)
		}

		fmt.Printf("deposit of %s: %s\n", holder, deposit)
	}

	return nil
}

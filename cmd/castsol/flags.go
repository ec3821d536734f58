package main

import (
	"castsol/internal/consts"

	"gopkg.in/urfave/cli.v1"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "YAML configuration file, defaults are used when omitted",
	}
	verboseFlag = cli.BoolFlag{
		Name:  "verbose",
		Usage: "Enable debug logs and print error stack traces",
	}
	rpcUrlFlag = cli.StringFlag{
		Name:  "rpc-url, r",
		Usage: "Solana JSON-RPC endpoint, overrides $" + consts.RpcURLEnv + " and the config file",
	}
	withBalanceChangesFlag = cli.BoolFlag{
		Name:  "with-balance-changes, w",
		Usage: "Append SOL and token balance change tables",
	}
)

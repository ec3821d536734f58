package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"castsol/internal/command"
	"castsol/internal/config"
	"castsol/internal/consts"
	"castsol/internal/pkg/errreport"
	"castsol/internal/pkg/logger"

	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"
)

const (
	exitFailure = 1
	exitPanic   = 101
)

var (
	// 通过 -ldflags 注入
	gitCommit = ""

	app *cli.App
)

func init() {
	app = cli.NewApp()
	app.Name = consts.AppName
	app.Usage = "Inspect Solana transactions from the command line"
	app.Version = "0.1.0"
	if gitCommit != "" {
		app.Version += "-" + gitCommit
	}
	app.Flags = []cli.Flag{
		configFileFlag,
		verboseFlag,
	}
	app.Commands = []cli.Command{
		{
			Name:      "tx",
			Aliases:   []string{"transaction"},
			Usage:     "Print the details of a transaction",
			ArgsUsage: "<signature>",
			Flags: []cli.Flag{
				rpcUrlFlag,
				withBalanceChangesFlag,
			},
			Action: runTx,
		},
	}
}

func main() {
	reporter := errreport.New(errreport.Options{
		NoColor:      !isatty.IsTerminal(os.Stderr.Fd()),
		BugReportURL: consts.BugReportURL,
	})

	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			logger.Errorf("[Main] panic: %+v\nstack: %s", r, stack)
			logger.Sync()
			reporter.Panic(os.Stderr, r, stack)
			os.Exit(exitPanic)
		}
	}()

	app.Before = func(ctx *cli.Context) error {
		reporter = errreport.New(errreport.Options{
			NoColor:      !isatty.IsTerminal(os.Stderr.Fd()),
			Verbose:      ctx.Bool(verboseFlag.Name),
			BugReportURL: consts.BugReportURL,
		})
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		logger.Errorf("[Main] command failed: %+v", err)
		logger.Sync()
		reporter.Report(os.Stderr, err)
		os.Exit(exitFailure)
	}
	logger.Sync()
}

func runTx(ctx *cli.Context) error {
	signature := ctx.Args().First()
	if signature == "" {
		return fmt.Errorf("tx signature is required, usage: %s tx <signature>", consts.AppName)
	}

	c, err := setup(ctx)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return command.Execute(runCtx, command.Env{Config: c, Out: os.Stdout}, command.TxCommand{
		Signature:          signature,
		RpcURL:             ctx.String(rpcUrlFlag.Name),
		WithBalanceChanges: ctx.Bool(withBalanceChangesFlag.Name),
	})
}

// setup 加载配置并初始化日志
func setup(ctx *cli.Context) (config.Config, error) {
	c, err := config.Load(ctx.GlobalString(configFileFlag.Name))
	if err != nil {
		return c, err
	}

	opt := c.LogConf.ToLogOption()
	if ctx.GlobalBool(verboseFlag.Name) {
		opt.Level = "debug"
	}
	if err := logger.Init(opt); err != nil {
		return c, err
	}
	logger.Debugf("[Main] config loaded, commitment=%s, timeout=%s\n%s", c.RpcConf.Commitment, c.RpcConf.Timeout(), c)
	return c, nil
}

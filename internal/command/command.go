package command

import (
	"context"
	"fmt"
	"io"

	"castsol/internal/config"
	"castsol/internal/logic/fetcher"
	"castsol/internal/logic/render"
	"castsol/internal/logic/txhandler"
	"castsol/internal/types"

	"github.com/pkg/errors"
)

// Command 是受支持命令的封闭集合，新增命令时在 Execute 中补充对应分支。
type Command interface {
	command()
}

// TxCommand 打印单笔交易的详细报告
type TxCommand struct {
	Signature          string // base58 交易签名
	RpcURL             string // 命令行指定的 RPC 地址，可为空
	WithBalanceChanges bool   // 是否输出余额变化表
}

func (TxCommand) command() {}

// Env 命令执行所需的外部依赖
type Env struct {
	Config     config.Config
	Out        io.Writer
	NewFetcher func(opt fetcher.Option) fetcher.Fetcher // 为空时使用 RPC 实现
}

func (e Env) fetcher(opt fetcher.Option) fetcher.Fetcher {
	if e.NewFetcher != nil {
		return e.NewFetcher(opt)
	}
	return fetcher.NewRpcFetcher(opt)
}

// Execute 分发并执行命令
func Execute(ctx context.Context, env Env, cmd Command) error {
	switch c := cmd.(type) {
	case TxCommand:
		return executeTx(ctx, env, c)
	default:
		return fmt.Errorf("unsupported command %T", cmd)
	}
}

func executeTx(ctx context.Context, env Env, c TxCommand) error {
	if _, err := types.TrySignatureFromBase58(c.Signature); err != nil {
		return errors.WithMessagef(err, "invalid tx signature %q", c.Signature)
	}

	endpoint, err := env.Config.ResolveEndpoint(c.RpcURL)
	if err != nil {
		return err
	}

	f := env.fetcher(fetcher.Option{
		Endpoint:   endpoint,
		Commitment: env.Config.RpcConf.Commitment,
		Timeout:    env.Config.RpcConf.Timeout(),
	})
	handler := txhandler.NewTransactionHandler(f, env.Out)
	return handler.HandleTx(ctx, c.Signature, render.Options{WithBalanceChanges: c.WithBalanceChanges})
}

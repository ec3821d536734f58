package txhandler

import (
	"context"
	"io"

	"castsol/internal/consts"
	"castsol/internal/logic/fetcher"
	"castsol/internal/logic/render"
	"castsol/internal/logic/txadapter"
	"castsol/internal/pkg/logger"

	"github.com/pkg/errors"
)

// TransactionHandler 串联单笔交易的处理流程：拉取 → 规范化 → 渲染 → 输出。
type TransactionHandler struct {
	fetcher fetcher.Fetcher
	out     io.Writer
}

func NewTransactionHandler(f fetcher.Fetcher, out io.Writer) *TransactionHandler {
	return &TransactionHandler{fetcher: f, out: out}
}

// HandleTx 拉取并输出一笔交易的报告。
// 拉取失败返回带签名上下文的错误；交易无法解码或缺少 meta 时输出 "invalid tx!" 并返回 nil。
func (h *TransactionHandler) HandleTx(ctx context.Context, signature string, opts render.Options) error {
	record, err := h.fetcher.GetTransaction(ctx, signature)
	if err != nil {
		return errors.WithMessagef(err, "failed to get tx: %q", signature)
	}

	tx, err := txadapter.AdaptRpcTx(signature, record)
	if err != nil {
		if !errors.Is(err, txadapter.ErrInvalidTx) {
			return errors.WithMessagef(err, "failed to adapt tx: %q", signature)
		}
		logger.Debugf("[TransactionHandler] invalid tx, signature=%s, reason=%v", signature, err)
		return h.write(consts.InvalidTxOutput)
	}

	logger.Debugf("[TransactionHandler] rendering tx, signature=%s, instructions=%d, accounts=%d",
		signature, len(tx.Instructions), tx.Accounts.Len())
	return h.write(render.Report(tx, opts))
}

func (h *TransactionHandler) write(report string) error {
	if _, err := io.WriteString(h.out, report+"\n"); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	return nil
}

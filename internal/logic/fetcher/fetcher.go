package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"castsol/internal/pkg/logger"

	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/pkg/errors"
)

// ErrTransactionNotFound 节点返回 result=null，即该签名对应的交易不存在（或尚未达到指定 commitment）
var ErrTransactionNotFound = errors.New("transaction not found")

// Fetcher 根据签名获取单笔交易的原始记录
type Fetcher interface {
	GetTransaction(ctx context.Context, signature string) (*TransactionRecord, error)
}

// Option RPC 拉取参数
type Option struct {
	Endpoint   string
	Commitment string
	Timeout    time.Duration
}

// RpcFetcher 通过 JSON-RPC getTransaction 拉取交易，只请求一次，不做重试。
type RpcFetcher struct {
	client     *rpc.RpcClient
	commitment rpc.Commitment
	timeout    time.Duration
}

func NewRpcFetcher(opt Option) *RpcFetcher {
	client := rpc.NewRpcClient(opt.Endpoint)
	commitment := rpc.Commitment(opt.Commitment)
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return &RpcFetcher{
		client:     &client,
		commitment: commitment,
		timeout:    opt.Timeout,
	}
}

type getTransactionConfig struct {
	Encoding                       string         `json:"encoding"`
	Commitment                     rpc.Commitment `json:"commitment,omitempty"`
	MaxSupportedTransactionVersion *uint8         `json:"maxSupportedTransactionVersion,omitempty"`
}

// RpcError JSON-RPC 协议层错误（例如签名格式非法、节点限流）
type RpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type getTransactionResponse struct {
	JsonRpc string             `json:"jsonrpc"`
	ID      uint64             `json:"id"`
	Result  *TransactionRecord `json:"result"`
	Error   *RpcError          `json:"error,omitempty"`
}

func (f *RpcFetcher) GetTransaction(ctx context.Context, signature string) (*TransactionRecord, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	// 支持 v0 交易；base58 编码与节点返回的 inner 指令数据编码保持一致
	maxVersion := uint8(0)
	cfg := getTransactionConfig{
		Encoding:                       "base58",
		Commitment:                     f.commitment,
		MaxSupportedTransactionVersion: &maxVersion,
	}

	start := time.Now()
	body, err := f.client.Call(ctx, "getTransaction", signature, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "getTransaction request failed")
	}
	logger.Debugf("[RpcFetcher] getTransaction 完成, signature=%s, bytes=%d, 耗时=%v", signature, len(body), time.Since(start))

	var resp getTransactionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.Wrap(err, "failed to decode getTransaction response")
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	if resp.Result == nil {
		return nil, ErrTransactionNotFound
	}
	return resp.Result, nil
}

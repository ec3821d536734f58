package txadapter

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"castsol/internal/logic/domain"
	"castsol/internal/logic/fetcher"
	"castsol/internal/types"

	"github.com/blocto/solana-go-sdk/common"
	sdktypes "github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
)

// ErrInvalidTx 交易 payload 无法解码或缺少执行 meta。
// 这是正常的终止结果（输出 "invalid tx!"），不是致命错误。
var ErrInvalidTx = errors.New("invalid tx")

// decodePayload 解析 getTransaction 返回的 ["<data>", "<encoding>"] 二元组，得到交易原始字节。
func decodePayload(raw json.RawMessage) ([]byte, error) {
	var pair []string
	if err := json.Unmarshal(raw, &pair); err != nil {
		return nil, fmt.Errorf("transaction is not an encoded payload: %w", err)
	}
	if len(pair) != 2 {
		return nil, fmt.Errorf("unexpected payload tuple length: %d", len(pair))
	}

	switch pair[1] {
	case "base58":
		return base58.Decode(pair[0])
	case "base64":
		return base64.StdEncoding.DecodeString(pair[0])
	default:
		return nil, fmt.Errorf("unsupported payload encoding %q", pair[1])
	}
}

// buildFullAccountKeys 构造交易中完整的账户列表。
// 拼接 message.accountKeys 与 Address Lookup Table 加载的 writable / readonly 地址，
// 供后续通过 accountIndex 索引使用。
func buildFullAccountKeys(static []common.PublicKey, loaded *fetcher.LoadedAddresses) (domain.AccountTable, error) {
	total := len(static)
	if loaded != nil {
		total += len(loaded.Writable) + len(loaded.Readonly)
	}
	accounts := make(domain.AccountTable, 0, total)

	// 主账户部分（来自 message.accountKeys）
	for _, pk := range static {
		accounts = append(accounts, types.Pubkey(pk))
	}
	if loaded == nil {
		return accounts, nil
	}

	// Address Table 中的 writable 部分，随后是 readonly 部分
	for _, group := range [][]string{loaded.Writable, loaded.Readonly} {
		for _, s := range group {
			pk, err := types.TryPubkeyFromBase58(s)
			if err != nil {
				return nil, fmt.Errorf("invalid loaded address at index %d: %w", len(accounts), err)
			}
			accounts = append(accounts, pk)
		}
	}
	return accounts, nil
}

// buildTopInstructions 将主指令与 meta 中的 inner 指令按主指令下标关联。
// 同一下标出现多次时以最后一次为准；下标超出主指令数量的 inner 列表被忽略。
func buildTopInstructions(compiled []sdktypes.CompiledInstruction, rawInners []fetcher.InnerInstructions) []domain.TopInstruction {
	instructions := make([]domain.TopInstruction, 0, len(compiled))
	for _, ix := range compiled {
		instructions = append(instructions, domain.TopInstruction{
			ProgramIDIndex: ix.ProgramIDIndex,
			Accounts:       ix.Accounts,
			Data:           ix.Data,
		})
	}

	for _, group := range rawInners {
		if group.Index < 0 || group.Index >= len(instructions) {
			continue
		}
		inners := make([]domain.InnerInstruction, 0, len(group.Instructions))
		for _, inner := range group.Instructions {
			inners = append(inners, convertInnerInstruction(inner))
		}
		instructions[group.Index].Inners = inners
	}
	return instructions
}

func convertInnerInstruction(inner fetcher.InnerInstruction) domain.InnerInstruction {
	ix := domain.InnerInstruction{
		ProgramIDIndex: inner.ProgramIDIndex,
		Accounts:       inner.Accounts,
		Data:           inner.Data,
	}
	if inner.StackHeight != nil {
		ix.StackHeight = domain.NewStackHeight(*inner.StackHeight)
	}
	return ix
}

func convertTokenBalances(list []fetcher.TokenBalance) []domain.TokenBalance {
	if list == nil {
		return nil
	}
	balances := make([]domain.TokenBalance, 0, len(list))
	for _, tb := range list {
		balances = append(balances, domain.TokenBalance{
			AccountIndex: tb.AccountIndex,
			Mint:         tb.Mint,
			Owner:        tb.Owner,
			Amount:       tb.UiTokenAmount.Amount,
			Decimals:     tb.UiTokenAmount.Decimals,
		})
	}
	return balances
}

// AdaptRpcTx 将 getTransaction 返回的原始记录规范化为 domain.Tx。
// 完整流程：
//  1. 校验 meta 是否存在；
//  2. 解码交易 payload 得到 message；
//  3. 构建完整账户表（含 Address Lookup）；
//  4. 关联主指令与 inner 指令，拷贝余额快照。
//
// payload 无法解码或 meta 缺失时返回包装了 ErrInvalidTx 的错误；解码过程中的 panic 同样视为无效交易。
func AdaptRpcTx(signature string, record *fetcher.TransactionRecord) (_ *domain.Tx, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(ErrInvalidTx, "AdaptRpcTx panic: %v", r)
		}
	}()

	if record == nil {
		return nil, errors.WithMessage(ErrInvalidTx, "missing transaction record")
	}
	meta := record.Meta
	if meta == nil {
		return nil, errors.WithMessage(ErrInvalidTx, "missing transaction meta")
	}

	raw, err := decodePayload(record.Transaction)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidTx, "decode payload: %v", err)
	}
	tx, err := sdktypes.TransactionDeserialize(raw)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidTx, "deserialize transaction: %v", err)
	}

	accounts, err := buildFullAccountKeys(tx.Message.Accounts, meta.LoadedAddresses)
	if err != nil {
		return nil, errors.WithMessagef(ErrInvalidTx, "build account keys: %v", err)
	}

	return &domain.Tx{
		Signature:    signature,
		Status:       FormatStatus(meta.Err),
		Fee:          meta.Fee,
		ComputeUnits: meta.ComputeUnitsConsumed,
		Accounts:     accounts,
		Instructions: buildTopInstructions(tx.Message.Instructions, meta.InnerInstructions),
		Balances: domain.BalanceSnapshot{
			Pre:  meta.PreBalances,
			Post: meta.PostBalances,
		},
		TokenBalances: domain.TokenBalanceSnapshot{
			Pre:     convertTokenBalances(meta.PreTokenBalances),
			Post:    convertTokenBalances(meta.PostTokenBalances),
			HasPre:  meta.PreTokenBalances != nil,
			HasPost: meta.PostTokenBalances != nil,
		},
	}, nil
}

package fetcher

import "encoding/json"

// TransactionRecord 对应 getTransaction 的 result 字段。
// Transaction 保留原始 JSON（encoding=base58 时为 ["<data>", "base58"]），由 txadapter 负责解码。
type TransactionRecord struct {
	Slot        uint64           `json:"slot"`
	BlockTime   *int64           `json:"blockTime"`
	Transaction json.RawMessage  `json:"transaction"`
	Meta        *TransactionMeta `json:"meta"`
	Version     json.RawMessage  `json:"version,omitempty"`
}

// TransactionMeta 交易执行元数据。
// PreTokenBalances / PostTokenBalances 为 nil 表示节点未返回，空切片表示返回了空列表。
type TransactionMeta struct {
	Err                  json.RawMessage     `json:"err"`
	Fee                  uint64              `json:"fee"`
	PreBalances          []uint64            `json:"preBalances"`
	PostBalances         []uint64            `json:"postBalances"`
	PreTokenBalances     []TokenBalance      `json:"preTokenBalances"`
	PostTokenBalances    []TokenBalance      `json:"postTokenBalances"`
	InnerInstructions    []InnerInstructions `json:"innerInstructions"`
	LoadedAddresses      *LoadedAddresses    `json:"loadedAddresses"`
	ComputeUnitsConsumed *uint64             `json:"computeUnitsConsumed"`
}

type LoadedAddresses struct {
	Writable []string `json:"writable"`
	Readonly []string `json:"readonly"`
}

// InnerInstructions 某条主指令（Index）执行期间产生的 inner 指令列表
type InnerInstructions struct {
	Index        int                `json:"index"`
	Instructions []InnerInstruction `json:"instructions"`
}

type InnerInstruction struct {
	ProgramIDIndex int     `json:"programIdIndex"`
	Accounts       []int   `json:"accounts"`
	Data           string  `json:"data"`
	StackHeight    *uint32 `json:"stackHeight"` // 旧版本节点不返回
}

type TokenBalance struct {
	AccountIndex  int         `json:"accountIndex"`
	Mint          string      `json:"mint"`
	Owner         string      `json:"owner,omitempty"`
	ProgramID     string      `json:"programId,omitempty"`
	UiTokenAmount TokenAmount `json:"uiTokenAmount"`
}

type TokenAmount struct {
	Amount         string `json:"amount"`
	Decimals       uint8  `json:"decimals"`
	UiAmountString string `json:"uiAmountString"`
}

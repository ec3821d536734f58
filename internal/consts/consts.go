package consts

const (
	AppName = "castsol"

	// SolDecimals 原生 SOL 精度：10^9 lamports = 1 SOL
	SolDecimals = 9

	// RpcURLEnv 未通过 --rpc-url 指定时读取的环境变量
	RpcURLEnv = "SOL_RPC_URL"

	DefaultCommitment = "confirmed"
	DefaultTimeoutSec = 30

	// IndentUnit 报告中每一级缩进的前缀
	IndentUnit = "     "

	// InvalidTxOutput 交易无法解码或缺少 meta 时的完整输出
	InvalidTxOutput = "invalid tx!"

	BugReportURL = "https://github.com/JamieShip/foundry-solana"
)

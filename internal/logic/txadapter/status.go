package txadapter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const StatusSuccess = "Success"

// transactionErrorText 节点 TransactionError 无字段变体的展示文本
var transactionErrorText = map[string]string{
	"AccountInUse":                       "Account in use",
	"AccountLoadedTwice":                 "Account loaded twice",
	"AccountNotFound":                    "Attempt to debit an account but found no record of a prior credit.",
	"ProgramAccountNotFound":             "Attempt to load a program that does not exist",
	"InsufficientFundsForFee":            "Insufficient funds for fee",
	"InvalidAccountForFee":               "This account may not be used to pay transaction fees",
	"AlreadyProcessed":                   "This transaction has already been processed",
	"BlockhashNotFound":                  "Blockhash not found",
	"CallChainTooDeep":                   "Loader call chain is too deep",
	"MissingSignatureForFee":             "Transaction requires a fee but has no signature present",
	"InvalidAccountIndex":                "Transaction contains an invalid account reference",
	"SignatureFailure":                   "Transaction did not pass signature verification",
	"InvalidProgramForExecution":         "This program may not be used for executing instructions",
	"SanitizeFailure":                    "Transaction failed to sanitize accounts offsets correctly",
	"ClusterMaintenance":                 "Transactions are currently disabled due to cluster maintenance",
	"AccountBorrowOutstanding":           "Transaction processing left an account with an outstanding borrowed reference",
	"WouldExceedMaxBlockCostLimit":       "Transaction would exceed max Block Cost Limit",
	"UnsupportedVersion":                 "Transaction version is unsupported",
	"InvalidWritableAccount":             "Transaction loads a writable account that cannot be written",
	"WouldExceedMaxAccountCostLimit":     "Transaction would exceed max account limit within the block",
	"WouldExceedAccountDataBlockLimit":   "Transaction would exceed account data limit within the block",
	"TooManyAccountLocks":                "Transaction locked too many accounts",
	"AddressLookupTableNotFound":         "Transaction loads an address table account that doesn't exist",
	"InvalidAddressLookupTableOwner":     "Transaction loads an address table account with an invalid owner",
	"InvalidAddressLookupTableData":      "Transaction loads an address table account with invalid data",
	"InvalidAddressLookupTableIndex":     "Transaction address table lookup uses an invalid index",
	"InvalidRentPayingAccount":           "Transaction leaves an account with a lower balance than rent-exempt minimum",
	"WouldExceedMaxVoteCostLimit":        "Transaction would exceed max Vote Cost Limit",
	"WouldExceedAccountDataTotalLimit":   "Transaction would exceed total account data limit",
	"MaxLoadedAccountsDataSizeExceeded":  "Transaction exceeded max loaded accounts data size cap",
	"InvalidLoadedAccountsDataSizeLimit": "LoadedAccountsDataSizeLimit set for transaction must be greater than 0.",
	"ResanitizationNeeded":               "ResanitizationNeeded",
	"UnbalancedTransaction":              "Sum of account balances before and after transaction do not match",
	"ProgramCacheHitMaxLimit":            "Program cache hit max limit",
}

// instructionErrorText 节点 InstructionError 无字段变体的展示文本
var instructionErrorText = map[string]string{
	"GenericError":                           "generic instruction error",
	"InvalidArgument":                        "invalid program argument",
	"InvalidInstructionData":                 "invalid instruction data",
	"InvalidAccountData":                     "invalid account data for instruction",
	"AccountDataTooSmall":                    "account data too small for instruction",
	"InsufficientFunds":                      "insufficient funds for instruction",
	"IncorrectProgramId":                     "incorrect program id for instruction",
	"MissingRequiredSignature":               "missing required signature for instruction",
	"AccountAlreadyInitialized":              "instruction requires an uninitialized account",
	"UninitializedAccount":                   "instruction requires an initialized account",
	"UnbalancedInstruction":                  "sum of account balances before and after instruction do not match",
	"ModifiedProgramId":                      "instruction illegally modified the program id of an account",
	"ExternalAccountLamportSpend":            "instruction spent from the balance of an account it does not own",
	"ExternalAccountDataModified":            "instruction modified data of an account it does not own",
	"ReadonlyLamportChange":                  "instruction changed the balance of a read-only account",
	"ReadonlyDataModified":                   "instruction modified data of a read-only account",
	"DuplicateAccountIndex":                  "instruction contains duplicate accounts",
	"ExecutableModified":                     "instruction changed executable bit of an account",
	"RentEpochModified":                      "instruction modified rent epoch of an account",
	"NotEnoughAccountKeys":                   "insufficient account keys for instruction",
	"AccountDataSizeChanged":                 "program other than the account's owner changed the size of the account data",
	"AccountNotExecutable":                   "instruction expected an executable account",
	"AccountBorrowFailed":                    "instruction tries to borrow reference for an account which is already borrowed",
	"AccountBorrowOutstanding":               "instruction left account with an outstanding borrowed reference",
	"DuplicateAccountOutOfSync":              "instruction modifications of multiply-passed account differ",
	"InvalidError":                           "program returned invalid error code",
	"ExecutableDataModified":                 "instruction changed executable accounts data",
	"ExecutableLamportChange":                "instruction changed the balance of an executable account",
	"ExecutableAccountNotRentExempt":         "executable accounts must be rent exempt",
	"UnsupportedProgramId":                   "Unsupported program id",
	"CallDepth":                              "Cross-program invocation call depth too deep",
	"MissingAccount":                         "An account required by the instruction is missing",
	"ReentrancyNotAllowed":                   "Cross-program invocation reentrancy not allowed for this instruction",
	"MaxSeedLengthExceeded":                  "Length of the seed is too long for address generation",
	"InvalidSeeds":                           "Provided seeds do not result in a valid address",
	"InvalidRealloc":                         "Failed to reallocate account data",
	"ComputationalBudgetExceeded":            "Computational budget exceeded",
	"PrivilegeEscalation":                    "Cross-program invocation with unauthorized signer or writable account",
	"ProgramEnvironmentSetupFailure":         "Failed to create program execution environment",
	"ProgramFailedToComplete":                "Program failed to complete",
	"ProgramFailedToCompile":                 "Program failed to compile",
	"Immutable":                              "Account is immutable",
	"IncorrectAuthority":                     "Incorrect authority provided",
	"AccountNotRentExempt":                   "An account does not have enough lamports to be rent-exempt",
	"InvalidAccountOwner":                    "Invalid account owner",
	"ArithmeticOverflow":                     "Program arithmetic overflowed",
	"UnsupportedSysvar":                      "Unsupported sysvar",
	"IllegalOwner":                           "Provided owner is not allowed",
	"MaxAccountsDataAllocationsExceeded":     "Accounts data allocations exceeded the maximum allowed per transaction",
	"MaxAccountsExceeded":                    "Max accounts exceeded",
	"MaxInstructionTraceLengthExceeded":      "Max instruction trace length exceeded",
	"BuiltinProgramsMustConsumeComputeUnits": "Builtin programs must consume compute units",
}

// FormatStatus 将 meta.err 转为可读文本，格式与节点的 TransactionError 展示方式一致：
//   - null → "Success"
//   - "AccountInUse" → "Account in use"
//   - {"InstructionError":[0,{"Custom":6001}]} → "Error processing Instruction 0: custom program error: 0x1771"
//   - {"InstructionError":[1,"InvalidAccountData"]} → "Error processing Instruction 1: invalid account data for instruction"
//   - {"InsufficientFundsForRent":{"account_index":2}} → "Transaction results in an account (2) with insufficient funds for rent"
//   - 未知变体输出原名或紧凑 JSON
func FormatStatus(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return StatusSuccess
	}

	var name string
	if err := json.Unmarshal(trimmed, &name); err == nil {
		if text, ok := transactionErrorText[name]; ok {
			return text
		}
		return name
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err == nil && len(obj) == 1 {
		for variant, value := range obj {
			if text, ok := formatTransactionErrorWithField(variant, value); ok {
				return text
			}
		}
	}
	return compactJSON(trimmed)
}

func formatTransactionErrorWithField(variant string, value json.RawMessage) (string, bool) {
	switch variant {
	case "InstructionError":
		var pair []json.RawMessage
		if err := json.Unmarshal(value, &pair); err != nil || len(pair) != 2 {
			return "", false
		}
		var index int
		if err := json.Unmarshal(pair[0], &index); err != nil {
			return "", false
		}
		return fmt.Sprintf("Error processing Instruction %d: %s", index, formatInstructionError(pair[1])), true

	case "DuplicateInstruction":
		var index int
		if err := json.Unmarshal(value, &index); err != nil {
			return "", false
		}
		return fmt.Sprintf("Transaction contains a duplicate instruction (%d) that is not allowed", index), true

	case "InsufficientFundsForRent", "ProgramExecutionTemporarilyRestricted":
		var field struct {
			AccountIndex *int `json:"account_index"`
		}
		if err := json.Unmarshal(value, &field); err != nil || field.AccountIndex == nil {
			return "", false
		}
		if variant == "InsufficientFundsForRent" {
			return fmt.Sprintf("Transaction results in an account (%d) with insufficient funds for rent", *field.AccountIndex), true
		}
		return fmt.Sprintf("Execution of the program referenced by account at index %d is temporarily restricted.", *field.AccountIndex), true
	}
	return "", false
}

func formatInstructionError(raw json.RawMessage) string {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		if text, ok := instructionErrorText[name]; ok {
			return text
		}
		return name
	}

	var fields struct {
		Custom       *uint32 `json:"Custom"`
		BorshIoError *string `json:"BorshIoError"`
	}
	if err := json.Unmarshal(raw, &fields); err == nil {
		switch {
		case fields.Custom != nil:
			return fmt.Sprintf("custom program error: 0x%x", *fields.Custom)
		case fields.BorshIoError != nil:
			return "Failed to serialize or deserialize account data: " + *fields.BorshIoError
		}
	}
	return compactJSON(raw)
}

func compactJSON(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

package chain

import (
	"encoding/json"
	"fmt"
)

// JSON-RPC 2.0 envelopes.

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      int             `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *rpcError       `json:"error,omitempty"`
}

// getAccountInfo result shapes under the jsonParsed encoding.

type accountInfoResult struct {
	Context struct {
		Slot uint64 `json:"slot"`
	} `json:"context"`
	Value *accountValue `json:"value"`
}

type accountValue struct {
	Executable bool        `json:"executable"`
	Lamports   uint64      `json:"lamports"`
	Owner      string      `json:"owner"`
	Data       accountData `json:"data"`
}

// accountData tolerates both encodings the node may answer with: a parsed
// object for accounts of known programs, or a ["<base64>", "base64"] tuple
// for everything else. The tuple case leaves the struct zero.
type accountData struct {
	Program string     `json:"program"`
	Parsed  parsedData `json:"parsed"`
}

func (d *accountData) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		*d = accountData{}
		return nil
	}
	type alias accountData
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = accountData(a)
	return nil
}

type parsedData struct {
	Type string          `json:"type"`
	Info json.RawMessage `json:"info"`
}

// mintInfo is the parsed info of an SPL mint account. Authority fields are
// empty strings when renounced.
type mintInfo struct {
	MintAuthority   string `json:"mintAuthority"`
	FreezeAuthority string `json:"freezeAuthority"`
	Supply          string `json:"supply"`
	Decimals        uint8  `json:"decimals"`
	IsInitialized   bool   `json:"isInitialized"`
}

// getProgramAccounts result entries.

type programAccount struct {
	Pubkey  string       `json:"pubkey"`
	Account accountValue `json:"account"`
}

// tokenAccountInfo is the parsed info of an SPL token holding account.
type tokenAccountInfo struct {
	Mint        string      `json:"mint"`
	Owner       string      `json:"owner"`
	State       string      `json:"state"`
	TokenAmount tokenAmount `json:"tokenAmount"`
}

type tokenAmount struct {
	Amount         string  `json:"amount"`
	Decimals       uint8   `json:"decimals"`
	UIAmountString string  `json:"uiAmountString"`
	UIAmount       float64 `json:"uiAmount"`
}

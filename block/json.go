package block

import (
	"encoding/json"
	"fmt"

	"github.com/accountchain/ledger/types"
)

// stateJSON is the wire envelope spec.md §6 defines for state blocks.
// Decoders accept either the hex or the account text form for Link, via
// the alternate LinkAsAccount field.
type stateJSON struct {
	Type           string        `json:"type"`
	Account        types.Account `json:"account"`
	Previous       types.Hash    `json:"previous"`
	Representative types.Account `json:"representative"`
	Balance        types.Amount  `json:"balance"`
	Link           *types.Hash   `json:"link,omitempty"`
	LinkAsAccount  *types.Account `json:"link_as_account,omitempty"`
	Token          types.TokenType `json:"token"`
	TokenName      string        `json:"token_name,omitempty"`
	Signature      types.Signature `json:"signature"`
	Work           types.Work    `json:"work"`
}

func (b *State) MarshalJSON() ([]byte, error) {
	linkAsAccount := types.Account(b.Link)
	return json.Marshal(stateJSON{
		Type:           TypeState.String(),
		Account:        b.Account,
		Previous:       b.Previous,
		Representative: b.Representative,
		Balance:        b.Balance,
		Link:           &b.Link,
		LinkAsAccount:  &linkAsAccount,
		Token:          b.TokenHash,
		Signature:      b.sig,
		Work:           b.work,
	})
}

func (b *State) UnmarshalJSON(data []byte) error {
	var j stateJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return fmt.Errorf("decoding state block: %w", err)
	}
	if j.Type != "" && j.Type != TypeState.String() {
		return fmt.Errorf("decoding state block: unexpected type %q", j.Type)
	}
	var link types.Hash
	switch {
	case j.Link != nil:
		link = *j.Link
	case j.LinkAsAccount != nil:
		link = types.Hash(*j.LinkAsAccount)
	}
	b.Account = j.Account
	b.Previous = j.Previous
	b.Representative = j.Representative
	b.Balance = j.Balance
	b.Link = link
	b.TokenHash = j.Token
	b.sig = j.Signature
	b.work = j.Work
	return nil
}

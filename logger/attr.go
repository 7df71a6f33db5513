// Package logger defines the structured log attribute constructors used
// across this module, following the teacher's convention of small
// slog.Attr helpers rather than ad-hoc key strings at each call site.
package logger

import (
	"fmt"
	"log/slog"

	"github.com/accountchain/ledger/types"
)

/*
Log attribute key values. Generally shouldn't be used directly, use the
appropriate attribute constructor function instead.
*/
const (
	ErrorKey   = "err"
	AccountKey = "account"
	HashKey    = "hash"
	CodeKey    = "code"
	DataKey    = "data"
)

/*
Error adds error to the log

	if err := f(); err != nil {
		log.Error("calling f", logger.Error(err))
	}
*/
func Error(err error) slog.Attr {
	return slog.Any(ErrorKey, err)
}

// Account adds the base-58-with-checksum text form of an account.
func Account(a types.Account) slog.Attr {
	return slog.String(AccountKey, a.String())
}

// Hash adds the hex form of a block or source hash.
func Hash(h types.Hash) slog.Attr {
	return slog.String(HashKey, h.String())
}

// Code adds a ledger outcome code, stringified rather than left as an int
// so log output reads the same names ProcessResult.Code does.
func Code(code fmt.Stringer) slog.Attr {
	return slog.String(CodeKey, code.String())
}

// Data adds an additional structured field to the message, same caveat as
// the teacher's own: prefer named fields over anonymous types here.
func Data(d any) slog.Attr {
	return slog.Any(DataKey, d)
}

package errors

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
)

// Error is a coded error. The catalog in errors.go assigns one code per
// failure; `Data` carries the per-occurrence context (cycle index,
// addresses, amounts) and is excluded from the RLP form so that two
// occurrences of the same failure hash alike.
type Error struct {
	Code    uint                   `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data" rlp:"-"`
}

func NewError(code uint, message string) *Error {
	return &Error{Code: code, Message: message, Data: map[string]interface{}{}}
}

func (o *Error) Error() string {
	b, _ := o.Serialize()
	return string(b)
}

func (o *Error) Serialize() ([]byte, error) {
	return json.Marshal(o)
}

// Clone must be called before SetData on a catalog error; the catalog
// entries are shared package vars.
func (o *Error) Clone() *Error {
	c := *o
	c.Data = map[string]interface{}{}
	for k, v := range o.Data {
		c.Data[k] = v
	}

	return &c
}

func (o *Error) SetData(k string, v interface{}) *Error {
	o.Data[k] = v

	return o
}

func (o *Error) EncodeRLP(w io.Writer) error {
	if o == nil {
		return rlp.Encode(w, []uint{})
	}

	if len(o.Data) > 0 {
		var keys []string
		for k := range o.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var d [][2]interface{}
		for _, k := range keys {
			d = append(d, [2]interface{}{k, o.Data[k]})
		}
		if err := rlp.Encode(w, d); err != nil {
			return err
		}
	}

	return rlp.Encode(w, struct {
		Code    uint
		Message string
	}{
		Code:    o.Code,
		Message: o.Message,
	})
}

// IsCode reports whether err is a coded error carrying target's code.
// Clones compare equal to their catalog entry.
func IsCode(err error, target *Error) bool {
	coded, ok := err.(*Error)
	return ok && coded != nil && coded.Code == target.Code
}

package log

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

type fieldKind uint8

const (
	kindBool fieldKind = iota + 1
	kindString
	kindHex8
	kindHex16
	kindInt
	kindUint
	kindError
	kindDuration
	kindStringer
	kindBlob
)

// ZField is a typed entry field. Scalars are stored in num, everything else
// in obj, so that building a field never allocates.
type ZField struct {
	Key  string
	kind fieldKind
	num  uint64
	str  string
	obj  any
}

// Value formats the field value for the text formatter. Addresses and bytes
// are lower-case hex without prefix.
func (f *ZField) Value() string {
	switch f.kind {
	case kindBool:
		return strconv.FormatBool(f.num != 0)
	case kindString:
		return f.str
	case kindHex8:
		return fmt.Sprintf("%02x", f.num)
	case kindHex16:
		return fmt.Sprintf("%04x", f.num)
	case kindInt:
		return strconv.FormatInt(int64(f.num), 10)
	case kindUint:
		return strconv.FormatUint(f.num, 10)
	case kindDuration:
		return time.Duration(f.num).String()
	case kindError:
		if f.obj == nil {
			return "<nil>"
		}
		return f.obj.(error).Error()
	case kindStringer:
		return f.obj.(fmt.Stringer).String()
	case kindBlob:
		return hex.EncodeToString(f.obj.([]byte))
	}
	return ""
}

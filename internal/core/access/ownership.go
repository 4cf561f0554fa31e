package access

import (
	"encoding/hex"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var zeroHex = primitive.NilObjectID.Hex()

// CheckOwnership reports whether principalID and ownerID name the same
// account. Identifiers are compared in canonical form, so an ObjectID equals
// its hex string. Empty, zero and unrecognised identifiers never match.
func CheckOwnership(principalID, ownerID any) bool {
	a, ok := canonicalID(principalID)
	if !ok {
		return false
	}
	b, ok := canonicalID(ownerID)
	if !ok {
		return false
	}
	return a == b
}

func canonicalID(v any) (string, bool) {
	var s string
	switch id := v.(type) {
	case nil:
		return "", false
	case primitive.ObjectID:
		s = id.Hex()
	case *primitive.ObjectID:
		if id == nil {
			return "", false
		}
		s = id.Hex()
	case string:
		s = id
	case *string:
		if id == nil {
			return "", false
		}
		s = *id
	case []byte:
		if len(id) == 12 {
			s = hex.EncodeToString(id)
		} else {
			s = string(id)
		}
	case fmt.Stringer:
		s = id.String()
	default:
		return "", false
	}

	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == zeroHex {
		return "", false
	}
	return s, true
}

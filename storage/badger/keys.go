package badger

import (
	"fmt"

	"github.com/deeptechhq/expertmatch/core"
)

// Key prefixes for different data types
const (
	expertRecordPrefix = "exprec"
	expertIDSeq        = "exprecseq"
)

// makeExpertKey generates a key for an expert profile by ID.
func makeExpertKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", expertRecordPrefix, id))
}

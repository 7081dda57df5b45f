package coded

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.ytsaurus.tech/library/go/core/xerrors"
)

// Code define stable error code. Codes are registered once at package init, duplicate registration panics.
type Code string

func (c Code) ID() string {
	return string(c)
}

func (c Code) Contains(err error) bool {
	var codedErr CodedError
	unwrappedErr := err
	for xerrors.As(unwrappedErr, &codedErr) {
		if codedErr.Code() == c {
			return true
		}
		unwrappedErr = xerrors.Unwrap(codedErr)
	}
	return false
}

var (
	registryMu       sync.RWMutex
	knownCodes       = make(map[Code]struct{})
	codeDescriptions = make(map[Code]string)
)

func Register(parts ...string) Code {
	registryMu.Lock()
	defer registryMu.Unlock()

	code := Code(strings.Join(parts, "."))
	if _, ok := knownCodes[code]; ok {
		panic(fmt.Sprintf("code: %s already registered", code))
	}
	knownCodes[code] = struct{}{}
	return code
}

func RegisterShortDescription(code Code, description string) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := knownCodes[code]; !ok {
		panic(fmt.Sprintf("code: %s not registered, cannot register description", code))
	}
	codeDescriptions[code] = description
}

func GetShortDescription(code Code) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	description, exists := codeDescriptions[code]
	return description, exists
}

func All() []Code {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]Code, 0, len(knownCodes))
	for code := range knownCodes {
		result = append(result, code)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i] < result[j]
	})
	return result
}

package bigsi

import "errors"

// Error kinds. All are sentinel values wrapped with fmt.Errorf("...: %w")
// at the point of failure, so callers can errors.Is against a stable
// kind without parsing message text.
var (
	ErrNullArgument       = errors.New("bigsi: required argument was nil")
	ErrOutOfRange         = errors.New("bigsi: index out of range")
	ErrDuplicateID        = errors.New("bigsi: sequence id already inserted")
	ErrIncompatibleFilter = errors.New("bigsi: bloom filter incompatible with index parameters")
	ErrEmptyFilter        = errors.New("bigsi: bloom filter has popcount zero")
	ErrColourOverflow     = errors.New("bigsi: numColours would exceed MAX_COLOURS")
	ErrUnindexed          = errors.New("bigsi: index has not been finalised")
	ErrAlreadyIndexed     = errors.New("bigsi: index has already been finalised")
	ErrHashMismatch       = errors.New("bigsi: hash count does not match numHashes")
	ErrResultMismatch     = errors.New("bigsi: result bit vector capacity does not match numColours")
	ErrNotFound           = errors.New("bigsi: colour not found")
	ErrNoColours          = errors.New("bigsi: no bloom filters inserted, nothing to finalise")
	ErrDirectoryNotEmpty  = errors.New("bigsi: directory already contains an index")
)

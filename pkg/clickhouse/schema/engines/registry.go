package engines

type constructor func(args Args) (Engine, error)

var supportedKinds = []Kind{
	MergeTree,
	ReplacingMergeTree,
	SummingMergeTree,
	AggregatingMergeTree,
	ReplicatedMergeTree,
	ReplicatedReplacingMergeTree,
	ReplicatedSummingMergeTree,
	ReplicatedAggregatingMergeTree,
}

func lookup(kind Kind) (constructor, bool) {
	switch kind {
	case MergeTree, AggregatingMergeTree, ReplicatedMergeTree, ReplicatedAggregatingMergeTree:
		return func(args Args) (Engine, error) {
			engine, err := NewMergeTree(kind, args)
			if err != nil {
				return nil, err
			}
			return engine, nil
		}, true
	case ReplacingMergeTree, ReplicatedReplacingMergeTree:
		return func(args Args) (Engine, error) {
			engine, err := NewReplacingMergeTree(kind, args)
			if err != nil {
				return nil, err
			}
			return engine, nil
		}, true
	case SummingMergeTree, ReplicatedSummingMergeTree:
		return func(args Args) (Engine, error) {
			engine, err := NewSummingMergeTree(kind, args)
			if err != nil {
				return nil, err
			}
			return engine, nil
		}, true
	default:
		return nil, false
	}
}

// IsSupported is true exactly for kinds which have a constructor.
func IsSupported(kind Kind) bool {
	_, ok := lookup(kind)
	return ok
}

func SupportedKinds() []Kind {
	result := make([]Kind, len(supportedKinds))
	copy(result, supportedKinds)
	return result
}

func ParseKind(name string) (Kind, error) {
	kind := Kind(name)
	if !IsSupported(kind) {
		return "", &UnsupportedEngineError{Kind: name}
	}
	return kind, nil
}

// New builds engine of given kind with the constructor registered for it.
func New(kind Kind, args Args) (Engine, error) {
	construct, ok := lookup(kind)
	if !ok {
		return nil, &UnsupportedEngineError{Kind: string(kind)}
	}
	return construct(args)
}

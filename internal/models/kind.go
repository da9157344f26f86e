package models

// Kind identifies a record collection.
type Kind int

const (
	KindParticipant Kind = iota
	KindGuardian
	KindSede
)

type kindInfo struct {
	collection string
	label      string
}

var kinds = [...]kindInfo{
	KindParticipant: {collection: "participants", label: "participante"},
	KindGuardian:    {collection: "guardians", label: "acudiente"},
	KindSede:        {collection: "sedes", label: "sede"},
}

// Kinds lists every record kind.
func Kinds() []Kind {
	return []Kind{KindParticipant, KindGuardian, KindSede}
}

// Collection is the plural name used in routes, tables and events.
func (k Kind) Collection() string { return kinds[k].collection }

// Label is the Spanish singular used in messages.
func (k Kind) Label() string { return kinds[k].label }

func (k Kind) String() string { return k.Collection() }

// Valid reports whether k is a declared kind.
func (k Kind) Valid() bool { return k >= 0 && int(k) < len(kinds) }

// ParseKind resolves a collection name.
func ParseKind(collection string) (Kind, bool) {
	for _, k := range Kinds() {
		if k.Collection() == collection {
			return k, true
		}
	}
	return 0, false
}

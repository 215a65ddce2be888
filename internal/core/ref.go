package core

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// UnknownName is substituted whenever a foreign key cannot be resolved to a
// display name. Records are reported with the placeholder rather than omitted.
const UnknownName = "Unknown"

// RefKind tags the two shapes a stored foreign key can take, plus absence.
type RefKind uint8

const (
	RefEmpty     RefKind = iota // null, missing, or an unrecognized shape
	RefID                       // bare identifier
	RefPopulated                // embedded sub-document with at least an id
)

// Ref is a foreign-key field that the document store delivers either as a
// bare identifier or as a populated sub-object. Builders never inspect the
// raw shapes; they go through ID/DisplayName so both cases behave identically.
type Ref struct {
	Kind RefKind `json:"-"`
	ID   string  `json:"id"`
	Name string  `json:"name,omitempty"`
}

// RefTo builds an id-only reference. Used by the memory store and tests.
func RefTo(id ID) Ref {
	if id == "" {
		return Ref{}
	}
	return Ref{Kind: RefID, ID: string(id)}
}

// PopulatedRef builds a populated reference carrying a display name.
func PopulatedRef(id ID, name string) Ref {
	return Ref{Kind: RefPopulated, ID: string(id), Name: name}
}

// Resolved reports whether the reference carries a usable identifier.
func (r Ref) Resolved() bool { return r.Kind != RefEmpty && r.ID != "" }

// DisplayName returns the populated name, or UnknownName when the reference
// is bare, empty, or populated without one.
func (r Ref) DisplayName() string {
	if r.Kind == RefPopulated && r.Name != "" {
		return r.Name
	}
	return UnknownName
}

// Is reports whether the reference points at the given record id.
func (r Ref) Is(id ID) bool { return r.Resolved() && r.ID == string(id) }

// UnmarshalBSONValue accepts every shape the store produces: an ObjectID, a
// hex string, null/undefined, or a populated sub-document with `_id`/`id` and
// optionally `name` or `firstName`+`lastName`. Unrecognized shapes decode to
// an empty Ref; this method never returns an error so one malformed reference
// cannot poison a whole collection read.
func (r *Ref) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*r = Ref{}
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		if oid, ok := rv.ObjectIDOK(); ok {
			*r = Ref{Kind: RefID, ID: oid.Hex()}
		}
	case bsontype.String:
		if s, ok := rv.StringValueOK(); ok && s != "" {
			*r = Ref{Kind: RefID, ID: s}
		}
	case bsontype.EmbeddedDocument:
		var doc struct {
			ID        ID     `bson:"_id"`
			AltID     ID     `bson:"id"`
			Name      string `bson:"name"`
			FirstName string `bson:"firstName"`
			LastName  string `bson:"lastName"`
		}
		if err := bson.Unmarshal(data, &doc); err != nil {
			return nil
		}
		id := doc.ID
		if id == "" {
			id = doc.AltID
		}
		name := doc.Name
		if name == "" {
			name = joinName(doc.FirstName, doc.LastName)
		}
		if id != "" || name != "" {
			*r = Ref{Kind: RefPopulated, ID: string(id), Name: name}
		}
	}
	return nil
}

// ID is a record identifier. The store may deliver it as an ObjectID or as a
// plain string; both decode to the hex/string form.
type ID string

func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	*id = ""
	rv := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.ObjectID:
		if oid, ok := rv.ObjectIDOK(); ok {
			*id = ID(oid.Hex())
		}
	case bsontype.String:
		if s, ok := rv.StringValueOK(); ok {
			*id = ID(s)
		}
	}
	return nil
}

package core

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type refHolder struct {
	R Ref `bson:"r"`
}

func decodeRef(t *testing.T, value interface{}) Ref {
	t.Helper()
	raw, err := bson.Marshal(bson.M{"r": value})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var h refHolder
	if err := bson.Unmarshal(raw, &h); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return h.R
}

func TestRefDecodeObjectID(t *testing.T) {
	oid := primitive.NewObjectID()
	r := decodeRef(t, oid)
	if r.Kind != RefID || r.ID != oid.Hex() {
		t.Fatalf("unexpected ref: %+v", r)
	}
	if got := r.DisplayName(); got != UnknownName {
		t.Fatalf("bare id should display %q, got %q", UnknownName, got)
	}
}

func TestRefDecodeString(t *testing.T) {
	r := decodeRef(t, "stu-42")
	if r.Kind != RefID || r.ID != "stu-42" {
		t.Fatalf("unexpected ref: %+v", r)
	}
}

func TestRefDecodeNull(t *testing.T) {
	r := decodeRef(t, nil)
	if r.Resolved() {
		t.Fatalf("null ref should not resolve: %+v", r)
	}
	if got := r.DisplayName(); got != UnknownName {
		t.Fatalf("expected %q, got %q", UnknownName, got)
	}
}

func TestRefDecodePopulatedWithName(t *testing.T) {
	oid := primitive.NewObjectID()
	r := decodeRef(t, bson.M{"_id": oid, "name": "Terminale A"})
	if r.Kind != RefPopulated || r.ID != oid.Hex() || r.Name != "Terminale A" {
		t.Fatalf("unexpected ref: %+v", r)
	}
	if got := r.DisplayName(); got != "Terminale A" {
		t.Fatalf("expected populated name, got %q", got)
	}
}

func TestRefDecodePopulatedWithFirstLast(t *testing.T) {
	r := decodeRef(t, bson.M{"id": "par-7", "firstName": "Awa", "lastName": "Diallo"})
	if r.Kind != RefPopulated || r.ID != "par-7" {
		t.Fatalf("unexpected ref: %+v", r)
	}
	if got := r.DisplayName(); got != "Awa Diallo" {
		t.Fatalf("expected joined name, got %q", got)
	}
}

func TestRefDecodeUnrecognizedShape(t *testing.T) {
	// A numeric foreign key is not a shape the portal produces; it must
	// decode to an empty ref rather than error out the whole document.
	r := decodeRef(t, int32(7))
	if r.Resolved() {
		t.Fatalf("numeric value should yield empty ref: %+v", r)
	}
}

func TestIDDecodeBothShapes(t *testing.T) {
	oid := primitive.NewObjectID()
	raw, err := bson.Marshal(bson.M{"_id": oid, "name": "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var ft FeeType
	if err := bson.Unmarshal(raw, &ft); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ft.ID != ID(oid.Hex()) {
		t.Fatalf("expected hex id, got %q", ft.ID)
	}

	raw, err = bson.Marshal(bson.M{"_id": "fee-1", "name": "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := bson.Unmarshal(raw, &ft); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ft.ID != "fee-1" {
		t.Fatalf("expected string id, got %q", ft.ID)
	}
}

// Package mongo implements the store ports against the school's MongoDB
// instance, the same document store the portal's CRUD layer writes to.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecole/internal/core"
	"ecole/internal/log"
	"ecole/internal/store"
)

// Collection names as created by the CRUD layer.
const (
	collStudents    = "students"
	collTeachers    = "teachers"
	collClasses     = "classes"
	collParents     = "parents"
	collPayments    = "payments"
	collFeeTypes    = "feetypes"
	collAssignments = "studentfees"
	collAttendance  = "attendances"
	collNotices     = "notices"
)

type Store struct {
	db      *mongo.Database
	logger  *log.Logger
	timeout time.Duration
}

var _ store.Store = (*Store)(nil)

// Open connects, pings, and returns the store plus a disconnect function.
func Open(ctx context.Context, uri, database string, timeout time.Duration, logger *log.Logger) (*Store, func(context.Context) error, error) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(cctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(cctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	s := &Store{
		db:      client.Database(database),
		logger:  logger.WithComponent(log.ComponentStore),
		timeout: timeout,
	}
	return s, client.Disconnect, nil
}

func (s *Store) ListStudents(ctx context.Context, f store.Filter) ([]core.Student, error) {
	filter := bson.M{}
	if f.ParentID != "" {
		filter["$or"] = refMatch("parent", f.ParentID)
	}
	mergeWindow(filter, "admissionDate", f)
	return list[core.Student](ctx, s, collStudents, filter, findOptions("admissionDate", f))
}

func (s *Store) ListTeachers(ctx context.Context, f store.Filter) ([]core.Teacher, error) {
	filter := bson.M{}
	mergeWindow(filter, "joinDate", f)
	return list[core.Teacher](ctx, s, collTeachers, filter, findOptions("joinDate", f))
}

func (s *Store) ListClasses(ctx context.Context, f store.Filter) ([]core.Class, error) {
	return list[core.Class](ctx, s, collClasses, bson.M{}, findOptions("", f))
}

func (s *Store) ListParents(ctx context.Context, f store.Filter) ([]core.Parent, error) {
	return list[core.Parent](ctx, s, collParents, bson.M{}, findOptions("", f))
}

func (s *Store) ListPayments(ctx context.Context, f store.Filter) ([]core.Payment, error) {
	filter := bson.M{}
	if f.StudentID != "" {
		filter["$or"] = refMatch("student", f.StudentID)
	}
	mergeWindow(filter, "paymentDate", f)
	return list[core.Payment](ctx, s, collPayments, filter, findOptions("paymentDate", f))
}

func (s *Store) ListFeeTypes(ctx context.Context, f store.Filter) ([]core.FeeType, error) {
	return list[core.FeeType](ctx, s, collFeeTypes, bson.M{}, findOptions("", f))
}

func (s *Store) ListAssignments(ctx context.Context, f store.Filter) ([]core.FeeAssignment, error) {
	filter := bson.M{}
	if f.StudentID != "" {
		filter["$or"] = refMatch("student", f.StudentID)
	}
	return list[core.FeeAssignment](ctx, s, collAssignments, filter, findOptions("", f))
}

func (s *Store) ListAttendance(ctx context.Context, f store.Filter) ([]core.Attendance, error) {
	filter := bson.M{}
	mergeWindow(filter, "date", f)
	return list[core.Attendance](ctx, s, collAttendance, filter, findOptions("date", f))
}

func (s *Store) ListNotices(ctx context.Context, f store.Filter) ([]core.Notice, error) {
	filter := bson.M{}
	if f.Audience != "" {
		filter["targetAudience"] = bson.M{"$in": []string{f.Audience, "All"}}
	}
	mergeWindow(filter, "publishDate", f)
	return list[core.Notice](ctx, s, collNotices, filter, findOptions("publishDate", f))
}

// list runs a Find and decodes every document, skipping (and logging) the
// ones that fail to decode so a single malformed record cannot empty a
// report that the rest of the collection could still feed.
func list[T any](ctx context.Context, s *Store, coll string, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cur, err := s.db.Collection(coll).Find(cctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll, err)
	}
	defer cur.Close(cctx)

	var out []T
	for cur.Next(cctx) {
		var doc T
		if err := cur.Decode(&doc); err != nil {
			s.logger.WarnContext(ctx, "Skipping undecodable document", "collection", coll, "error", err)
			continue
		}
		out = append(out, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", coll, err)
	}
	return out, nil
}

// refMatch matches a foreign-key field stored either as a bare id (ObjectID
// or string) or as a populated sub-document carrying `_id`.
func refMatch(field string, id core.ID) []bson.M {
	values := []interface{}{string(id)}
	if oid, err := primitive.ObjectIDFromHex(string(id)); err == nil {
		values = append(values, oid)
	}
	in := bson.M{"$in": values}
	return []bson.M{
		{field: in},
		{field + "._id": in},
	}
}

func mergeWindow(filter bson.M, dateField string, f store.Filter) {
	window := bson.M{}
	if !f.From.IsZero() {
		window["$gte"] = f.From
	}
	if !f.To.IsZero() {
		window["$lte"] = f.To
	}
	if len(window) > 0 {
		filter[dateField] = window
	}
}

func findOptions(dateField string, f store.Filter) *options.FindOptions {
	opts := options.Find()
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.NewestFirst && dateField != "" {
		opts.SetSort(bson.D{{Key: dateField, Value: -1}})
	}
	return opts
}

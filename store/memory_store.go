package store

import (
	"bytes"
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore keeps documents in process, round-tripping them through
// the bson codec so stored values have the same shapes Mongo returns.
// It understands equality, $ne and $in filters, $set patches and
// multi-key sorts.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]bson.M
	faults      map[faultKey]error
}

type faultKey struct {
	op         string
	collection string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string][]bson.M),
		faults:      make(map[faultKey]error),
	}
}

// InjectFault makes every later call of op on collection fail with err.
// Op names match the ones reported in OpError: insert, findOne, find,
// updateOne, updateMany, deleteOne, deleteMany, count, ping.
func (s *MemoryStore) InjectFault(op, collection string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[faultKey{op: op, collection: collection}] = err
}

func (s *MemoryStore) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[faultKey]error)
}

func (s *MemoryStore) check(ctx context.Context, op, collection string) error {
	if err := ctx.Err(); err != nil {
		return unavailable(op, collection, err)
	}
	if err, ok := s.faults[faultKey{op: op, collection: collection}]; ok {
		return unavailable(op, collection, err)
	}
	return nil
}

func (s *MemoryStore) Insert(ctx context.Context, collection string, doc interface{}) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, "insert", collection); err != nil {
		return "", err
	}

	stored, err := toDocument(doc)
	if err != nil {
		return "", fmt.Errorf("insert %s: %w", collection, err)
	}
	var oid primitive.ObjectID
	switch id := stored["_id"].(type) {
	case nil:
		oid = primitive.NewObjectID()
		stored["_id"] = oid
	case primitive.ObjectID:
		oid = id
		for _, existing := range s.collections[collection] {
			if existing["_id"] == oid {
				return "", unavailable("insert", collection, fmt.Errorf("duplicate key %s", oid.Hex()))
			}
		}
	default:
		return "", fmt.Errorf("insert %s: unsupported _id type %T", collection, id)
	}

	s.collections[collection] = append(s.collections[collection], stored)
	return oid.Hex(), nil
}

func (s *MemoryStore) FindOne(ctx context.Context, collection string, filter bson.M, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "findOne", collection); err != nil {
		return err
	}

	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			return decodeDocument(doc, out)
		}
	}
	return ErrNotFound
}

func (s *MemoryStore) FindMany(ctx context.Context, collection string, filter bson.M, opts FindOptions, out interface{}) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "find", collection); err != nil {
		return err
	}

	target := reflect.ValueOf(out)
	if target.Kind() != reflect.Ptr || target.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("find %s: out must be a pointer to a slice, got %T", collection, out)
	}

	var matched []bson.M
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			matched = append(matched, doc)
		}
	}
	if len(opts.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(matched[i], matched[j], opts.Sort)
		})
	}
	if opts.Skip > 0 {
		if opts.Skip >= int64(len(matched)) {
			matched = nil
		} else {
			matched = matched[opts.Skip:]
		}
	}
	if opts.Limit > 0 && int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	sliceType := target.Elem().Type()
	result := reflect.MakeSlice(sliceType, 0, len(matched))
	for _, doc := range matched {
		elem := reflect.New(sliceType.Elem())
		if err := decodeDocument(doc, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	target.Elem().Set(result)
	return nil
}

func (s *MemoryStore) UpdateOne(ctx context.Context, collection string, filter bson.M, patch bson.M) (int64, error) {
	return s.update(ctx, "updateOne", collection, filter, patch, false)
}

func (s *MemoryStore) UpdateMany(ctx context.Context, collection string, filter bson.M, patch bson.M) (int64, error) {
	return s.update(ctx, "updateMany", collection, filter, patch, true)
}

func (s *MemoryStore) update(ctx context.Context, op, collection string, filter, patch bson.M, many bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, op, collection); err != nil {
		return 0, err
	}

	set, err := toDocument(patch)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", op, collection, err)
	}
	if _, ok := set["_id"]; ok {
		return 0, fmt.Errorf("%s %s: _id is immutable", op, collection)
	}

	var matched int64
	for _, doc := range s.collections[collection] {
		if !matches(doc, filter) {
			continue
		}
		for k, v := range set {
			doc[k] = v
		}
		matched++
		if !many {
			break
		}
	}
	return matched, nil
}

func (s *MemoryStore) DeleteOne(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return s.delete(ctx, "deleteOne", collection, filter, false)
}

func (s *MemoryStore) DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error) {
	return s.delete(ctx, "deleteMany", collection, filter, true)
}

func (s *MemoryStore) delete(ctx context.Context, op, collection string, filter bson.M, many bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.check(ctx, op, collection); err != nil {
		return 0, err
	}

	docs := s.collections[collection]
	kept := docs[:0]
	var deleted int64
	for _, doc := range docs {
		if (many || deleted == 0) && matches(doc, filter) {
			deleted++
			continue
		}
		kept = append(kept, doc)
	}
	s.collections[collection] = kept
	return deleted, nil
}

func (s *MemoryStore) Count(ctx context.Context, collection string, filter bson.M) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "count", collection); err != nil {
		return 0, err
	}

	var n int64
	for _, doc := range s.collections[collection] {
		if matches(doc, filter) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.check(ctx, "ping", "memory")
}

// CollectionNames lists the collections holding at least one document.
func (s *MemoryStore) CollectionNames(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.check(ctx, "listCollections", "memory"); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(s.collections))
	for name, docs := range s.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

func toDocument(v interface{}) (bson.M, error) {
	raw, err := bson.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func decodeDocument(doc bson.M, out interface{}) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	return bson.Unmarshal(raw, out)
}

func matches(doc, filter bson.M) bool {
	for key, cond := range filter {
		value, present := doc[key]
		ops, isOperator := operators(cond)
		if !isOperator {
			if !present || !equalValues(value, cond) {
				return false
			}
			continue
		}
		for op, arg := range ops {
			switch op {
			case "$eq":
				if !present || !equalValues(value, arg) {
					return false
				}
			case "$ne":
				if present && equalValues(value, arg) {
					return false
				}
			case "$in":
				if !present || !containsValue(arg, value) {
					return false
				}
			default:
				return false
			}
		}
	}
	return true
}

func operators(cond interface{}) (map[string]interface{}, bool) {
	var ops map[string]interface{}
	switch c := cond.(type) {
	case bson.M:
		ops = c
	case map[string]interface{}:
		ops = c
	case bson.D:
		ops = make(map[string]interface{}, len(c))
		for _, e := range c {
			ops[e.Key] = e.Value
		}
	default:
		return nil, false
	}
	if len(ops) == 0 {
		return nil, false
	}
	for k := range ops {
		if !strings.HasPrefix(k, "$") {
			return nil, false
		}
	}
	return ops, true
}

func containsValue(list, value interface{}) bool {
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if equalValues(value, rv.Index(i).Interface()) {
			return true
		}
	}
	return false
}

func equalValues(a, b interface{}) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func less(a, b bson.M, order bson.D) bool {
	for _, key := range order {
		c := compareValues(a[key.Key], b[key.Key])
		if c == 0 {
			continue
		}
		if dir, ok := toFloat(key.Value); ok && dir < 0 {
			return c > 0
		}
		return c < 0
	}
	return false
}

// compareValues orders missing values first and otherwise compares
// values of the same bson type.
func compareValues(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return strings.Compare(av, bv)
		}
	case primitive.DateTime:
		if bv, ok := b.(primitive.DateTime); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case primitive.ObjectID:
		if bv, ok := b.(primitive.ObjectID); ok {
			return bytes.Compare(av[:], bv[:])
		}
	case bool:
		if bv, ok := b.(bool); ok && av != bv {
			if !av {
				return -1
			}
			return 1
		}
	}
	return 0
}

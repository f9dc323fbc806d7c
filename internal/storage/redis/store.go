package redisstore

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"casarural/internal/adapters/observability"
	"casarural/internal/domain"
)

const (
	keyPrefix = "booking:"
	indexKey  = "bookings:ids"

	// bound on concurrent HGETALLs when materializing list reads
	readFanout = 8
)

type Store struct{ c *redis.Client }

func New(addr, pass string, db int) *Store {
	return &Store{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func bookingKey(id string) string { return keyPrefix + id }

// Create assigns a timestamp-derived id. The id is reserved in the index
// set first; a same-millisecond collision bumps the token until SADD
// reports a new member.
func (s *Store) Create(ctx context.Context, f domain.Fields) (string, error) {
	n := time.Now().UnixMilli()
	id := strconv.FormatInt(n, 10)
	for {
		added, err := s.c.SAdd(ctx, indexKey, id).Result()
		if err != nil {
			observability.ObserveStore("redis", "create", "error")
			return "", err
		}
		if added == 1 {
			break
		}
		n++
		id = strconv.FormatInt(n, 10)
	}

	err := s.c.HSet(ctx, bookingKey(id),
		"name", f.Name,
		"email", f.Email,
		"phone", f.Phone,
		"guests", f.Guests,
		"date_in", f.DateIn,
		"date_out", f.DateOut,
		"price", f.Price,
	).Err()
	if err != nil {
		// drop the reservation so list reads don't chase a missing hash
		_ = s.c.SRem(ctx, indexKey, id).Err()
		observability.ObserveStore("redis", "create", "error")
		return "", err
	}
	observability.ObserveStore("redis", "create", "ok")
	return id, nil
}

func (s *Store) ListBookedDateRanges(ctx context.Context) ([]domain.DateRange, error) {
	bs, err := s.list(ctx, "list_dates")
	if err != nil {
		return nil, err
	}
	out := make([]domain.DateRange, 0, len(bs))
	for _, b := range bs {
		out = append(out, domain.DateRange{StartDate: b.DateIn, EndDate: b.DateOut})
	}
	return out, nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.list(ctx, "list_all")
}

func (s *Store) list(ctx context.Context, op string) ([]domain.Booking, error) {
	ids, err := s.c.SMembers(ctx, indexKey).Result()
	if err != nil {
		observability.ObserveStore("redis", op, "error")
		return nil, err
	}

	found := make([]*domain.Booking, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(readFanout)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			m, err := s.c.HGetAll(gctx, bookingKey(id)).Result()
			if err != nil {
				return err
			}
			if len(m) == 0 {
				return nil // index entry without a hash; skip
			}
			b := hashToBooking(id, m)
			found[i] = &b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		observability.ObserveStore("redis", op, "error")
		return nil, err
	}

	var out []domain.Booking
	for _, b := range found {
		if b != nil {
			out = append(out, *b)
		}
	}
	observability.ObserveStore("redis", op, "ok")
	return out, nil
}

// Update writes only the supplied fields onto the existing hash. The
// existence check and the write are not a single atomic step; per-request
// correctness under concurrent writers is the store's per-key atomicity,
// same as the relational backend's row lock.
func (s *Store) Update(ctx context.Context, id string, p domain.Patch) error {
	exists, err := s.c.Exists(ctx, bookingKey(id)).Result()
	if err != nil {
		observability.ObserveStore("redis", "update", "error")
		return err
	}
	if exists == 0 {
		observability.ObserveStore("redis", "update", "not_found")
		return domain.ErrNotFound
	}

	kv := make([]any, 0, 14)
	if p.Name != nil {
		kv = append(kv, "name", *p.Name)
	}
	if p.Email != nil {
		kv = append(kv, "email", *p.Email)
	}
	if p.Phone != nil {
		kv = append(kv, "phone", *p.Phone)
	}
	if p.Guests != nil {
		kv = append(kv, "guests", *p.Guests)
	}
	if p.DateIn != nil {
		kv = append(kv, "date_in", *p.DateIn)
	}
	if p.DateOut != nil {
		kv = append(kv, "date_out", *p.DateOut)
	}
	if p.Price != nil {
		kv = append(kv, "price", *p.Price)
	}
	if err := s.c.HSet(ctx, bookingKey(id), kv...).Err(); err != nil {
		observability.ObserveStore("redis", "update", "error")
		return err
	}
	observability.ObserveStore("redis", "update", "ok")
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	removed, err := s.c.Del(ctx, bookingKey(id)).Result()
	if err != nil {
		observability.ObserveStore("redis", "delete", "error")
		return err
	}
	if removed == 0 {
		observability.ObserveStore("redis", "delete", "not_found")
		return domain.ErrNotFound
	}
	if err := s.c.SRem(ctx, indexKey, id).Err(); err != nil {
		observability.ObserveStore("redis", "delete", "error")
		return err
	}
	observability.ObserveStore("redis", "delete", "ok")
	return nil
}

func hashToBooking(id string, m map[string]string) domain.Booking {
	guests, _ := strconv.Atoi(m["guests"])
	price, _ := strconv.ParseFloat(m["price"], 64)
	return domain.Booking{
		ID:      id,
		Name:    m["name"],
		Email:   m["email"],
		Phone:   m["phone"],
		Guests:  guests,
		DateIn:  m["date_in"],
		DateOut: m["date_out"],
		Price:   price,
	}
}

package repo

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/storefront-service/internal/app/cart/contracts"
	"github.com/light-bringer/storefront-service/internal/models/m_cart"
	"github.com/light-bringer/storefront-service/internal/pkg/query"
)

// SnapshotRepo implements SnapshotStore for Spanner. Each cart occupies a
// single row keyed by cart id; the snapshot column holds the serialized line
// item array.
type SnapshotRepo struct {
	client *spanner.Client
	model  *m_cart.Model
}

// NewSnapshotRepo creates a new SnapshotRepo.
func NewSnapshotRepo(client *spanner.Client) contracts.SnapshotStore {
	return &SnapshotRepo{
		client: client,
		model:  m_cart.NewModel(),
	}
}

// Load retrieves the stored blob for a cart id. A missing row yields an
// empty blob, not an error.
func (r *SnapshotRepo) Load(ctx context.Context, cartID string) ([]byte, error) {
	row, err := r.client.Single().ReadRow(ctx, m_cart.TableName, spanner.Key{cartID}, []string{
		m_cart.Snapshot,
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to read cart slot")
	}

	var blob []byte
	if err := row.Column(0, &blob); err != nil {
		return nil, errors.Wrap(err, "failed to parse cart slot")
	}
	return blob, nil
}

// SaveMut creates a mutation replacing the full snapshot for the slot.
func (r *SnapshotRepo) SaveMut(cartID string, blob []byte) *spanner.Mutation {
	return r.model.SaveMut(cartID, blob)
}

// DeleteMut creates a mutation removing the slot.
func (r *SnapshotRepo) DeleteMut(cartID string) *spanner.Mutation {
	return r.model.DeleteMut(cartID)
}

// ListStale returns ids of cart slots not written since the cutoff.
func (r *SnapshotRepo) ListStale(ctx context.Context, cutoff time.Time, limit int64) ([]string, error) {
	stmt := query.From(m_cart.TableName).
		Select(m_cart.CartID).
		Where(query.Lt(m_cart.UpdatedAt, cutoff)).
		OrderBy(m_cart.UpdatedAt, query.Asc).
		Limit(limit).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	ids := make([]string, 0, limit)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to iterate stale carts")
		}

		var id string
		if err := row.Column(0, &id); err != nil {
			return nil, errors.Wrap(err, "failed to parse cart id")
		}
		ids = append(ids, id)
	}

	return ids, nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/90sidort/skillshare-api/internal/core/domain"
	"github.com/90sidort/skillshare-api/internal/core/ports"
)

const collectionOffers = "offers"

// OfferRepository implements both ports.OfferRepository and
// ports.MatchingStore. The offer document embeds the applicant and
// participant id arrays plus a version counter, so one version-checked
// update covers both membership sets.
type OfferRepository struct {
	offers *mongo.Collection
	users  *mongo.Collection
	seq    *Sequences
}

func NewOfferRepository(db *mongo.Database, seq *Sequences) *OfferRepository {
	return &OfferRepository{
		offers: db.Collection(collectionOffers),
		users:  db.Collection(collectionUsers),
		seq:    seq,
	}
}

type offerDoc struct {
	ID             int64     `bson:"_id"`
	Title          string    `bson:"title"`
	Description    string    `bson:"description"`
	SkillID        int64     `bson:"skill_id"`
	OwnerID        int64     `bson:"owner_id"`
	Available      bool      `bson:"available"`
	Limit          int       `bson:"limit"`
	Status         string    `bson:"status"`
	ApplicantIDs   []int64   `bson:"applicant_ids"`
	ParticipantIDs []int64   `bson:"participant_ids"`
	Version        int64     `bson:"version"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func fromOfferDoc(d offerDoc) *domain.Offer {
	return &domain.Offer{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		SkillID:      d.SkillID,
		OwnerID:      d.OwnerID,
		Available:    d.Available,
		Limit:        d.Limit,
		Status:       domain.OfferStatus(d.Status),
		Applicants:   membersFromIDs(d.ApplicantIDs),
		Participants: membersFromIDs(d.ParticipantIDs),
		Version:      d.Version,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func membersFromIDs(ids []int64) []domain.Member {
	members := make([]domain.Member, 0, len(ids))
	for _, id := range ids {
		members = append(members, domain.Member{ID: id})
	}
	return members
}

func memberIDs(members []domain.Member) []int64 {
	ids := make([]int64, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	return ids
}

// Create inserts a new offer with a freshly issued id.
func (r *OfferRepository) Create(ctx context.Context, offer *domain.Offer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.seq.Next(ctx, collectionOffers)
	if err != nil {
		return err
	}

	doc := offerDoc{
		ID:             id,
		Title:          offer.Title,
		Description:    offer.Description,
		SkillID:        offer.SkillID,
		OwnerID:        offer.OwnerID,
		Available:      offer.Available,
		Limit:          offer.Limit,
		Status:         string(offer.Status),
		ApplicantIDs:   []int64{},
		ParticipantIDs: []int64{},
		Version:        1,
		CreatedAt:      offer.CreatedAt,
		UpdatedAt:      offer.UpdatedAt,
	}

	if _, err := r.offers.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert offer: %w", err)
	}

	offer.ID = id
	offer.Version = 1
	return nil
}

// FindByID returns the offer with both membership sets hydrated.
func (r *OfferRepository) FindByID(ctx context.Context, id int64) (*domain.Offer, error) {
	return r.LoadOfferWithRelations(ctx, id, ports.OfferRelations{Applicants: true, Participants: true})
}

// LoadOfferWithRelations loads the offer document and hydrates usernames
// for the requested membership sets.
func (r *OfferRepository) LoadOfferWithRelations(ctx context.Context, id int64, rels ports.OfferRelations) (*domain.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc offerDoc
	if err := r.offers.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOfferNotFound
		}
		return nil, fmt.Errorf("find offer: %w", err)
	}

	offer := fromOfferDoc(doc)
	if rels.Applicants || rels.Participants {
		if err := r.hydrateUsernames(ctx, offer); err != nil {
			return nil, err
		}
	}
	return offer, nil
}

// LoadUserWithRelations loads the user and derives the applied and
// participating views by querying offers for the user's id.
func (r *OfferRepository) LoadUserWithRelations(ctx context.Context, id int64, rels ports.UserRelations) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user := fromUserDoc(doc)
	if rels.Applied {
		refs, err := r.offerRefsByMembership(ctx, "applicant_ids", id)
		if err != nil {
			return nil, err
		}
		user.Applied = refs
	}
	if rels.Participates {
		refs, err := r.offerRefsByMembership(ctx, "participant_ids", id)
		if err != nil {
			return nil, err
		}
		user.Participates = refs
	}
	return user, nil
}

// SaveOffer persists the offer with a compare-and-swap on the version
// field. Both membership arrays land in the same single-document write.
func (r *OfferRepository) SaveOffer(ctx context.Context, offer *domain.Offer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	now := time.Now().UTC()
	res, err := r.offers.UpdateOne(ctx,
		bson.M{"_id": offer.ID, "version": offer.Version},
		bson.M{
			"$set": bson.M{
				"title":           offer.Title,
				"description":     offer.Description,
				"available":       offer.Available,
				"limit":           offer.Limit,
				"status":          string(offer.Status),
				"applicant_ids":   memberIDs(offer.Applicants),
				"participant_ids": memberIDs(offer.Participants),
				"updated_at":      now,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("save offer: %w", err)
	}
	if res.MatchedCount == 0 {
		// Distinguish a lost race from a deleted offer.
		n, err := r.offers.CountDocuments(ctx, bson.M{"_id": offer.ID})
		if err != nil {
			return fmt.Errorf("save offer: %w", err)
		}
		if n == 0 {
			return domain.ErrOfferNotFound
		}
		return domain.ErrConflict
	}

	offer.Version++
	offer.UpdatedAt = now
	return nil
}

// Update persists scalar fields only, with the same version check. Member
// arrays stay untouched so CRUD edits cannot clobber a concurrent matching
// mutation.
func (r *OfferRepository) Update(ctx context.Context, offer *domain.Offer) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.offers.UpdateOne(ctx,
		bson.M{"_id": offer.ID, "version": offer.Version},
		bson.M{
			"$set": bson.M{
				"title":       offer.Title,
				"description": offer.Description,
				"available":   offer.Available,
				"limit":       offer.Limit,
				"status":      string(offer.Status),
				"updated_at":  offer.UpdatedAt,
			},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("update offer: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.offers.CountDocuments(ctx, bson.M{"_id": offer.ID})
		if err != nil {
			return fmt.Errorf("update offer: %w", err)
		}
		if n == 0 {
			return domain.ErrOfferNotFound
		}
		return domain.ErrConflict
	}

	offer.Version++
	return nil
}

// Delete removes the offer document.
func (r *OfferRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.offers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrOfferNotFound
	}
	return nil
}

// List returns a page of offers matching filter plus the total count.
// Membership sets carry ids only; list views need counts, not usernames.
func (r *OfferRepository) List(ctx context.Context, filter ports.ListOffersFilter) ([]*domain.Offer, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Title != "" {
		query["title"] = bson.M{"$regex": regexp.QuoteMeta(filter.Title), "$options": "i"}
	}
	if filter.SkillID != 0 {
		query["skill_id"] = filter.SkillID
	}
	if filter.OwnerID != 0 {
		query["owner_id"] = filter.OwnerID
	}

	total, err := r.offers.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count offers: %w", err)
	}

	skip := int64((filter.Page - 1) * filter.Limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(int64(filter.Limit))

	cur, err := r.offers.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list offers: %w", err)
	}
	defer cur.Close(ctx)

	var offers []*domain.Offer
	for cur.Next(ctx) {
		var doc offerDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, fmt.Errorf("decode offer: %w", err)
		}
		offers = append(offers, fromOfferDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list offers: %w", err)
	}
	return offers, total, nil
}

// ListOffersByOwner returns the owner's offers with usernames hydrated for
// both membership sets.
func (r *OfferRepository) ListOffersByOwner(ctx context.Context, ownerID int64) ([]*domain.Offer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.offers.Find(ctx, bson.M{"owner_id": ownerID}, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list offers by owner: %w", err)
	}
	defer cur.Close(ctx)

	var offers []*domain.Offer
	for cur.Next(ctx) {
		var doc offerDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode offer: %w", err)
		}
		offers = append(offers, fromOfferDoc(doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list offers by owner: %w", err)
	}

	for _, o := range offers {
		if err := r.hydrateUsernames(ctx, o); err != nil {
			return nil, err
		}
	}
	return offers, nil
}

// hydrateUsernames fills in usernames for all members of both sets with a
// single users query.
func (r *OfferRepository) hydrateUsernames(ctx context.Context, offer *domain.Offer) error {
	ids := make([]int64, 0, len(offer.Applicants)+len(offer.Participants))
	ids = append(ids, memberIDs(offer.Applicants)...)
	ids = append(ids, memberIDs(offer.Participants)...)
	if len(ids) == 0 {
		return nil
	}

	cur, err := r.users.Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"username": 1}),
	)
	if err != nil {
		return fmt.Errorf("hydrate members: %w", err)
	}
	defer cur.Close(ctx)

	names := make(map[int64]string, len(ids))
	for cur.Next(ctx) {
		var doc struct {
			ID       int64  `bson:"_id"`
			Username string `bson:"username"`
		}
		if err := cur.Decode(&doc); err != nil {
			return fmt.Errorf("hydrate members: %w", err)
		}
		names[doc.ID] = doc.Username
	}
	if err := cur.Err(); err != nil {
		return fmt.Errorf("hydrate members: %w", err)
	}

	for i := range offer.Applicants {
		offer.Applicants[i].Username = names[offer.Applicants[i].ID]
	}
	for i := range offer.Participants {
		offer.Participants[i].Username = names[offer.Participants[i].ID]
	}
	return nil
}

// offerRefsByMembership lists the offers whose given membership array
// contains userID.
func (r *OfferRepository) offerRefsByMembership(ctx context.Context, field string, userID int64) ([]domain.OfferRef, error) {
	cur, err := r.offers.Find(ctx,
		bson.M{field: userID},
		options.Find().SetProjection(bson.M{"title": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("membership query: %w", err)
	}
	defer cur.Close(ctx)

	var refs []domain.OfferRef
	for cur.Next(ctx) {
		var doc struct {
			ID    int64  `bson:"_id"`
			Title string `bson:"title"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("membership query: %w", err)
		}
		refs = append(refs, domain.OfferRef{ID: doc.ID, Title: doc.Title})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("membership query: %w", err)
	}
	return refs, nil
}

// EnsureIndexes creates the offer collection indexes.
func (r *OfferRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "skill_id", Value: 1}}},
		{Keys: bson.D{{Key: "applicant_ids", Value: 1}}},
		{Keys: bson.D{{Key: "participant_ids", Value: 1}}},
	}

	_, err := r.offers.Indexes().CreateMany(ctx, indexes)
	return err
}

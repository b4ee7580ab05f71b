package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/your-org/emoup/internal/config"
	"github.com/your-org/emoup/internal/models"
)

// MongoStore is the document store holding user, doctor and music documents.
type MongoStore struct {
	client  *mongo.Client
	users   *mongo.Collection
	doctors *mongo.Collection
	musics  *mongo.Collection
}

func NewMongoStore(cfg config.MongoConfig) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(cfg.Database)
	s := &MongoStore{
		client:  client,
		users:   db.Collection(cfg.Users),
		doctors: db.Collection(cfg.Doctors),
		musics:  db.Collection(cfg.Musics),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure indexes: %w", err)
	}

	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "device_id", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	})
	if err != nil {
		return err
	}
	_, err = s.musics.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "cluster", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "spotify_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	return err
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// --- Users ---

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", models.ErrAlreadyExists, u.Email)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	u := &models.User{}
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFound(id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *MongoStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	u := &models.User{}
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFound(email)
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetUserByDevice resolves a secondary device identifier to its user.
func (s *MongoStore) GetUserByDevice(ctx context.Context, deviceID string) (*models.User, error) {
	u := &models.User{}
	err := s.users.FindOne(ctx, bson.M{"device_id": deviceID}).Decode(u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFound(deviceID)
		}
		return nil, fmt.Errorf("get user by device: %w", err)
	}
	return u, nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	cursor, err := s.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// SetUserFields applies a partial $set update to a user document. Existence
// is judged by the matched count, not the modified count, so setting a field
// to its current value is not mistaken for a missing user.
func (s *MongoStore) SetUserFields(ctx context.Context, id string, fields bson.M) error {
	result, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.NotFound(id)
	}
	return nil
}

func (s *MongoStore) DeleteUser(ctx context.Context, id string) error {
	result, err := s.users.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.NotFound(id)
	}
	return nil
}

// PushNote appends a note to the user's note sequence. A $push always
// modifies an existing document, so a zero modified count means the user
// does not exist.
func (s *MongoStore) PushNote(ctx context.Context, id string, note models.Note, updated int64) error {
	result, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"notes": note},
		"$set":  bson.M{"updated": updated},
	})
	if err != nil {
		return fmt.Errorf("push note: %w", err)
	}
	if result.ModifiedCount == 0 {
		return models.NotFound(id)
	}
	return nil
}

// AppendEmotion appends an emotion event to states and refreshes the cached
// current_emotion scalar in a single update. Mongo applies the update to one
// document atomically, so the history and the scalar cannot diverge.
func (s *MongoStore) AppendEmotion(ctx context.Context, id string, event models.EmotionEvent) error {
	result, err := s.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$push": bson.M{"states": event},
		"$set": bson.M{
			"current_emotion": event.Emotion,
			"updated":         event.Captured,
		},
	})
	if err != nil {
		return fmt.Errorf("append emotion: %w", err)
	}
	if result.ModifiedCount == 0 {
		return models.NotFound(id)
	}
	return nil
}

// --- Doctors ---

func (s *MongoStore) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	if _, err := s.doctors.InsertOne(ctx, d); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", models.ErrAlreadyExists, d.ID)
		}
		return fmt.Errorf("create doctor: %w", err)
	}
	return nil
}

func (s *MongoStore) GetDoctor(ctx context.Context, id string) (*models.Doctor, error) {
	d := &models.Doctor{}
	err := s.doctors.FindOne(ctx, bson.M{"_id": id}).Decode(d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFound(id)
		}
		return nil, fmt.Errorf("get doctor: %w", err)
	}
	return d, nil
}

func (s *MongoStore) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := s.doctors.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("decode doctors: %w", err)
	}
	return doctors, nil
}

func (s *MongoStore) SetDoctorFields(ctx context.Context, id string, fields bson.M) error {
	result, err := s.doctors.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update doctor: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.NotFound(id)
	}
	return nil
}

func (s *MongoStore) DeleteDoctor(ctx context.Context, id string) error {
	result, err := s.doctors.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete doctor: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.NotFound(id)
	}
	return nil
}

// --- Musics ---

func (s *MongoStore) CreateMusic(ctx context.Context, m *models.Music) error {
	if _, err := s.musics.InsertOne(ctx, m); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", models.ErrAlreadyExists, m.ID)
		}
		return fmt.Errorf("create music: %w", err)
	}
	return nil
}

func (s *MongoStore) GetMusic(ctx context.Context, id string) (*models.Music, error) {
	m := &models.Music{}
	err := s.musics.FindOne(ctx, bson.M{"_id": id}).Decode(m)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, models.NotFound(id)
		}
		return nil, fmt.Errorf("get music: %w", err)
	}
	return m, nil
}

func (s *MongoStore) ListMusics(ctx context.Context) ([]models.Music, error) {
	cursor, err := s.musics.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list musics: %w", err)
	}
	defer cursor.Close(ctx)

	var musics []models.Music
	if err := cursor.All(ctx, &musics); err != nil {
		return nil, fmt.Errorf("decode musics: %w", err)
	}
	return musics, nil
}

// TracksByCluster returns the catalog subset tagged with the given cluster.
func (s *MongoStore) TracksByCluster(ctx context.Context, cluster string) ([]models.Music, error) {
	cursor, err := s.musics.Find(ctx, bson.M{"cluster": cluster})
	if err != nil {
		return nil, fmt.Errorf("list musics by cluster: %w", err)
	}
	defer cursor.Close(ctx)

	var musics []models.Music
	if err := cursor.All(ctx, &musics); err != nil {
		return nil, fmt.Errorf("decode musics: %w", err)
	}
	return musics, nil
}

func (s *MongoStore) SetMusicFields(ctx context.Context, id string, fields bson.M) error {
	result, err := s.musics.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("update music: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.NotFound(id)
	}
	return nil
}

func (s *MongoStore) DeleteMusic(ctx context.Context, id string) error {
	result, err := s.musics.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete music: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.NotFound(id)
	}
	return nil
}

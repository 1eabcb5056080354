package repository

import (
	"context"
	"errors"

	"kysely-service/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type QuestionRepository struct {
	Col *mongo.Collection
}

func NewQuestionRepository(db *mongo.Database) *QuestionRepository {
	return &QuestionRepository{Col: db.Collection("questions")}
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]models.Question, error) {
	return r.find(ctx, bson.M{})
}

func (r *QuestionRepository) FindByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Question, error) {
	return r.find(ctx, bson.M{"category": categoryID})
}

// FindByIDs returns the questions in the order of the given IDs. An ID that
// resolves to no document is reported as models.ErrNotFound.
func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Question, error) {
	found, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Question, len(found))
	for _, q := range found {
		byID[q.ID] = q
	}
	ordered := make([]models.Question, 0, len(ids))
	for _, id := range ids {
		q, ok := byID[id]
		if !ok {
			return nil, models.ErrNotFound
		}
		ordered = append(ordered, q)
	}
	return ordered, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Question, error) {
	var question models.Question
	err := r.Col.FindOne(ctx, bson.M{"_id": id}).Decode(&question)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *QuestionRepository) Create(ctx context.Context, question *models.Question) error {
	if question.ID.IsZero() {
		question.ID = primitive.NewObjectID()
	}
	_, err := r.Col.InsertOne(ctx, question)
	return err
}

func (r *QuestionRepository) CreateMany(ctx context.Context, questions []models.Question) (int, error) {
	docs := make([]interface{}, 0, len(questions))
	for i := range questions {
		if questions[i].ID.IsZero() {
			questions[i].ID = primitive.NewObjectID()
		}
		docs = append(docs, questions[i])
	}
	res, err := r.Col.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

func (r *QuestionRepository) Update(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	res, err := r.Col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": update})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.Col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteByCategory is the second phase of the cascading category delete.
func (r *QuestionRepository) DeleteByCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	res, err := r.Col.DeleteMany(ctx, bson.M{"category": categoryID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *QuestionRepository) find(ctx context.Context, filter bson.M) ([]models.Question, error) {
	cur, err := r.Col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/teamops/teamops-api/internal/core/domain"
)

const taskCollection = "tasks"

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(taskCollection)}
}

// Create inserts a new task document.
func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, task)
	return err
}

// FindByID retrieves a task by id within a project. A task id under the
// wrong project is absent.
func (r *TaskRepository) FindByID(ctx context.Context, projectID, id string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.coll.FindOne(ctx, bson.M{"_id": id, "project_id": projectID}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByProject returns the project's tasks, newest first.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID string) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"project_id": projectID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	tasks := make([]domain.Task, 0)
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update replaces the stored document.
func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": task.ID, "project_id": task.ProjectID}, task)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// Delete removes a single task.
func (r *TaskRepository) Delete(ctx context.Context, projectID, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id, "project_id": projectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteByProject removes all tasks under a project. Used by the project
// delete cascade.
func (r *TaskRepository) DeleteByProject(ctx context.Context, projectID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.DeleteMany(ctx, bson.M{"project_id": projectID})
	return err
}

func (r *TaskRepository) ensureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "project_id", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

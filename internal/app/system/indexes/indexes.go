// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent
(CreateMany is a no-op for indexes that already exist). We aggregate
errors so any problem is visible and startup can fail fast.

The unique indexes are load-bearing, not advisory: join-code uniqueness
and membership idempotence are serialized here, at the store, rather
than with application-level locking.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	ensure := func(coll string, models []mongo.IndexModel) {
		names, err := db.Collection(coll).Indexes().CreateMany(ctx, models)
		if err != nil {
			problems = append(problems, coll+": "+err.Error())
			return
		}
		log.Info("ensured indexes",
			zap.String("collection", coll),
			zap.Strings("indexes", names))
	}

	ensure("users", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("uniq_email_ci").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "display_name_ci", Value: 1}},
			Options: options.Index().SetName("uniq_display_name_ci").SetUnique(true),
		},
	})

	ensure("groups", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "join_code", Value: 1}},
			Options: options.Index().SetName("uniq_join_code").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "invite_token", Value: 1}},
			Options: options.Index().SetName("uniq_invite_token").SetUnique(true),
		},
	})

	ensure("group_memberships", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetName("uniq_group_user").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("user_created"),
		},
	})

	ensure("messages", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("group_created"),
		},
	})

	ensure("resources", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("group_created"),
		},
	})

	ensure("tasks", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}},
			Options: options.Index().SetName("group"),
		},
	})

	ensure("password_resets", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetName("ttl_expires_at").SetExpireAfterSeconds(0),
		},
		{
			Keys:    bson.D{{Key: "token", Value: 1}},
			Options: options.Index().SetName("token"),
		},
	})

	ensure("login_records", []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("user_created"),
		},
	})

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/*
 * Copyright (c) 2026, KappaKonnect.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kappakonnect/alumni-service/internal/alumni/model"
	"github.com/kappakonnect/alumni-service/internal/system/constants"
	"github.com/kappakonnect/alumni-service/internal/system/log"
)

// MongoDB server error codes the store distinguishes.
const (
	mongoUnauthorized      = 13
	mongoNamespaceNotFound = 26
)

// MongoAlumniStore reads the alumni directory from MongoDB collections named after
// the relational tables. MongoDB has no row-level security, so identity is only
// used for logging.
type MongoAlumniStore struct {
	database *mongo.Database
	timeout  time.Duration
}

// NewMongoAlumniStore creates a store over database.
func NewMongoAlumniStore(database *mongo.Database, timeout time.Duration) *MongoAlumniStore {
	return &MongoAlumniStore{
		database: database,
		timeout:  timeout,
	}
}

// ConnectMongo opens and verifies a MongoDB client.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "connect to mongodb")
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		_ = mongoClient.Disconnect(ctx)
		return nil, errors.Wrap(err, "ping mongodb")
	}
	return mongoClient, nil
}

func projection(columns []string) bson.M {
	fields := bson.M{}
	for _, column := range columns {
		fields[column] = 1
	}
	return fields
}

func (s *MongoAlumniStore) find(ctx context.Context, identity model.Identity, op, collection string,
	filter interface{}, opts *options.FindOptions) ([]map[string]interface{}, error) {

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cursor, err := s.database.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		log.GetLogger().WithContext(ctx).Debug("Alumni store query failed",
			log.String("operation", op), log.String("user_id", identity.ID), log.Error(err))
		return nil, classifyMongoError(err, op)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, classifyMongoError(err, op)
	}

	rows := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		rows = append(rows, documentToRow(doc))
	}
	return rows, nil
}

func (s *MongoAlumniStore) ListAlumni(ctx context.Context, identity model.Identity) ([]model.AlumniRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "graduation_year", Value: -1}}).
		SetProjection(projection(AlumniColumns))
	rows, err := s.find(ctx, identity, "list alumni", constants.AlumniTable, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	return mapAlumniRows(rows)
}

func (s *MongoAlumniStore) ListMemberProfiles(ctx context.Context, identity model.Identity) ([]model.MemberProfile, error) {
	opts := options.Find().SetProjection(projection(ProfileColumns))
	rows, err := s.find(ctx, identity, "list member profiles", constants.ProfilesTable, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	return mapProfileRows(rows)
}

func (s *MongoAlumniStore) ListFeaturedAlumniIDs(ctx context.Context, identity model.Identity) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"id": 1})
	rows, err := s.find(ctx, identity, "list featured alumni", constants.AlumniTable,
		bson.M{"is_featured": true}, opts)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		if id, ok := row["id"].(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (s *MongoAlumniStore) GetAlumniByID(ctx context.Context, identity model.Identity, id string) (*model.AlumniRecord, error) {
	opts := options.Find().SetProjection(projection(AlumniColumns)).SetLimit(1)
	rows, err := s.find(ctx, identity, "get alumni", constants.AlumniTable, bson.M{"id": id}, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	record, err := mapAlumniRow(rows[0])
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (s *MongoAlumniStore) Ping(ctx context.Context) error {
	return s.database.Client().Ping(ctx, nil)
}

// documentToRow flattens a document into the column map shared with the SQL backend.
// Documents without an explicit id fall back to their ObjectID.
func documentToRow(doc bson.M) map[string]interface{} {
	row := make(map[string]interface{}, len(doc))
	for key, value := range doc {
		if key == "_id" {
			continue
		}
		row[key] = value
	}
	if row["id"] == nil {
		switch oid := doc["_id"].(type) {
		case primitive.ObjectID:
			row["id"] = oid.Hex()
		case string:
			row["id"] = oid
		}
	}
	return row
}

func classifyMongoError(err error, op string) error {
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		switch {
		case serverErr.HasErrorCode(mongoNamespaceNotFound):
			return errors.Wrapf(ErrNotProvisioned, "%s: %v", op, err)
		case serverErr.HasErrorCode(mongoUnauthorized):
			return errors.Wrapf(ErrPermissionDenied, "%s: %v", op, err)
		}
	}
	return errors.Wrap(err, op)
}

// File: database/repository/appointment/transaction.go
package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"curbe/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSlotTaken signals that another active appointment already occupies the
// requested interval (including buffer) at commit time.
var ErrSlotTaken = errors.New("slot already taken")

// InsertIfSlotFree re-checks the overlap predicate and inserts the
// appointment inside a single Mongo transaction, so two concurrent bookings
// for the same interval cannot both commit. The unique index on
// (companyId, date, time) for non-cancelled rows backstops exact-slot
// duplicates even outside a replica set.
func (r *mongoAppointmentRepo) InsertIfSlotFree(ctx context.Context, appt *models.Appointment, bufferMinutes int) error {
	newStart, err := models.ClockToMinutes(appt.Time)
	if err != nil {
		return fmt.Errorf("invalid appointment time: %w", err)
	}
	newEnd := newStart + appt.DurationMinutes

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"companyId": appt.CompanyID,
			"date":      appt.Date,
			"status":    bson.M{"$ne": models.StatusCancelled},
		}
		cursor, err := r.coll.Find(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap recheck failed: %w", err)
		}
		var existing []models.Appointment
		if err := cursor.All(sc, &existing); err != nil {
			return fmt.Errorf("overlap recheck decode failed: %w", err)
		}

		for i := range existing {
			busyStart, busyEnd, err := existing[i].BufferedWindow(bufferMinutes)
			if err != nil {
				continue
			}
			if models.IntervalsOverlap(newStart, newEnd, busyStart, busyEnd) {
				return ErrSlotTaken
			}
		}

		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSlotTaken
			}
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}

// EnsureIndexes creates the necessary indexes on the appointments collection.
func (r *mongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: all appointments for a company on a date.
		{
			Keys:    bson.D{{Key: "companyId", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().SetName("company_date_time_idx"),
		},
		// At-most-one active booking per exact slot.
		{
			Keys: bson.D{{Key: "companyId", Value: 1}, {Key: "date", Value: 1}, {Key: "time", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("unique_active_slot").
				SetPartialFilterExpression(bson.M{"status": bson.M{"$in": bson.A{
					models.StatusPending, models.StatusConfirmed, models.StatusCompleted,
				}}}),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}

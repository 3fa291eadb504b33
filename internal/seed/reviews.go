// Package seed fills a development database with sample data.
package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"

	"elearning-marketplace/internal/models"
	"elearning-marketplace/internal/repositories"
)

var (
	ErrNoCourse = errors.New("no course found")
	ErrNoUsers  = errors.New("no users found")
)

// reviewerLimit caps how many users the reviews are spread across
const reviewerLimit = 3

type reviewFixture struct {
	Text   string
	Rating int
}

var reviewFixtures = []reviewFixture{
	{Text: "Great course! Helped me a lot.", Rating: 5},
	{Text: "Very informative and well structured.", Rating: 4},
	{Text: "Great course! Helped me a lot.", Rating: 5},
	{Text: "Great course! Helped me a lot.", Rating: 5},
}

// ReviewSeeder attaches sample reviews to one course. When CourseID is nil
// the course with the lowest id is used.
type ReviewSeeder struct {
	DB       *sql.DB
	CourseID *int64
	Out      io.Writer
}

// Result describes what a seeding run wrote
type Result struct {
	CourseID   int64
	CourseName string
	ReviewIDs  []int64
}

// Run inserts the fixture reviews and appends their ids to the course.
// The inserts and the append are separate statements, so a failed append
// leaves the inserted reviews behind; the returned error lists their ids.
func (s *ReviewSeeder) Run(ctx context.Context) (*Result, error) {
	out := s.Out
	if out == nil {
		out = io.Discard
	}

	courses := repositories.NewCourseRepository(s.DB)
	users := repositories.NewUserRepository(s.DB)
	reviews := repositories.NewReviewRepository(s.DB)

	course, err := s.findCourse(ctx, courses)
	if err != nil {
		return nil, err
	}
	name := course.CourseName
	if name == "" {
		name = "(no name)"
	}
	fmt.Fprintf(out, "📚 Using course: %d - %s\n", course.ID, name)

	reviewers, err := users.List(ctx, reviewerLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	if len(reviewers) == 0 {
		return nil, ErrNoUsers
	}

	result := &Result{CourseID: course.ID, CourseName: course.CourseName}
	for i, fixture := range reviewFixtures {
		review := &models.RatingAndReview{
			UserID:   reviewers[i%len(reviewers)].ID,
			CourseID: course.ID,
			Rating:   fixture.Rating,
			Review:   fixture.Text,
		}
		if err := reviews.Create(ctx, review); err != nil {
			return nil, fmt.Errorf("failed to insert review %d: %w", i+1, err)
		}
		result.ReviewIDs = append(result.ReviewIDs, review.ID)
		fmt.Fprintf(out, "✅ Review %d by user %d (%d★)\n", review.ID, review.UserID, review.Rating)
	}

	if err := courses.AppendReviews(ctx, course.ID, result.ReviewIDs); err != nil {
		return nil, fmt.Errorf("reviews %v inserted but not linked to course %d: %w", result.ReviewIDs, course.ID, err)
	}

	fmt.Fprintf(out, "Inserted %d reviews (with duplicates).\n", len(result.ReviewIDs))
	return result, nil
}

func (s *ReviewSeeder) findCourse(ctx context.Context, courses *repositories.CourseRepository) (*models.Course, error) {
	var (
		course *models.Course
		err    error
	)
	if s.CourseID != nil {
		course, err = courses.GetByID(ctx, *s.CourseID)
	} else {
		course, err = courses.First(ctx)
	}

	if errors.Is(err, models.ErrCourseNotFound) {
		return nil, ErrNoCourse
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find course: %w", err)
	}
	return course, nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"elearning-marketplace/internal/models"

	"github.com/lib/pq"
)

// CourseRepository handles course data operations
type CourseRepository struct {
	db DBTX
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{db: db}
}

const courseSelect = `
	SELECT c.id, c.course_name, c.course_description, c.instructor_id, c.price, c.thumbnail,
	       c.status, c.rating_and_reviews, c.created_at,
	       (SELECT COUNT(*) FROM course_enrollments e WHERE e.course_id = c.id) AS students_enrolled
	FROM courses c`

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRowContext(ctx, courseSelect+` WHERE c.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// First returns the course with the lowest id
func (r *CourseRepository) First(ctx context.Context) (*models.Course, error) {
	course, err := scanCourse(r.db.QueryRowContext(ctx, courseSelect+` ORDER BY c.id LIMIT 1`))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get first course: %w", err)
	}
	return course, nil
}

// ListPublished returns every published course, newest first
func (r *CourseRepository) ListPublished(ctx context.Context) ([]*models.Course, error) {
	rows, err := r.db.QueryContext(ctx, courseSelect+` WHERE c.status = $1 ORDER BY c.created_at DESC, c.id DESC`, models.CoursePublished)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

// ListEnrolledByUser returns the courses a student is enrolled in
func (r *CourseRepository) ListEnrolledByUser(ctx context.Context, userID int64) ([]*models.Course, error) {
	query := courseSelect + `
		JOIN course_enrollments ce ON ce.course_id = c.id
		WHERE ce.user_id = $1
		ORDER BY ce.enrolled_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrolled courses: %w", err)
	}
	defer rows.Close()

	return collectCourses(rows)
}

// AppendReviews appends review ids to the course's review list, keeping order
func (r *CourseRepository) AppendReviews(ctx context.Context, courseID int64, reviewIDs []int64) error {
	if len(reviewIDs) == 0 {
		return nil
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE courses SET rating_and_reviews = rating_and_reviews || $1::BIGINT[] WHERE id = $2`,
		pq.Array(reviewIDs), courseID)
	if err != nil {
		return fmt.Errorf("failed to append reviews to course %d: %w", courseID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return models.ErrCourseNotFound
	}
	return nil
}

func collectCourses(rows *sql.Rows) ([]*models.Course, error) {
	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course: %w", err)
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

func scanCourse(row rowScanner) (*models.Course, error) {
	course := &models.Course{}
	var reviews pq.Int64Array
	err := row.Scan(
		&course.ID,
		&course.CourseName,
		&course.CourseDescription,
		&course.InstructorID,
		&course.Price,
		&course.Thumbnail,
		&course.Status,
		&reviews,
		&course.CreatedAt,
		&course.StudentsEnrolled,
	)
	if err != nil {
		return nil, err
	}
	course.RatingAndReviews = []int64(reviews)
	return course, nil
}

package models

// Cart holds the courses a student intends to buy. It lives in the
// storefront session and is cleared after a successful enrollment.
type Cart struct {
	Courses    []CartCourse `json:"courses"`
	Total      int          `json:"total"` // in cents
	TotalItems int          `json:"total_items"`
}

// CartCourse represents a course in the shopping cart
type CartCourse struct {
	ID         int64  `json:"id"`
	CourseName string `json:"course_name"`
	Price      int    `json:"price"` // in cents
	Thumbnail  string `json:"thumbnail,omitempty"`
}

// Add appends a course, refusing duplicates
func (c *Cart) Add(course CartCourse) error {
	for _, existing := range c.Courses {
		if existing.ID == course.ID {
			return ErrCourseInCart
		}
	}

	c.Courses = append(c.Courses, course)
	c.Total += course.Price
	c.TotalItems++
	return nil
}

// Remove drops a course by id. It reports whether anything was removed.
func (c *Cart) Remove(courseID int64) bool {
	for i, existing := range c.Courses {
		if existing.ID != courseID {
			continue
		}
		c.Courses = append(c.Courses[:i], c.Courses[i+1:]...)
		c.Total -= existing.Price
		c.TotalItems--
		return true
	}
	return false
}

// Reset empties the cart
func (c *Cart) Reset() {
	c.Courses = nil
	c.Total = 0
	c.TotalItems = 0
}

// CourseIDs returns the ids in cart order
func (c *Cart) CourseIDs() []int64 {
	ids := make([]int64, 0, len(c.Courses))
	for _, course := range c.Courses {
		ids = append(ids, course.ID)
	}
	return ids
}

// IsEmpty reports whether the cart has no courses
func (c *Cart) IsEmpty() bool {
	return len(c.Courses) == 0
}

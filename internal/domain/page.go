package domain

// PageSize is the fixed number of lessons per page.
const PageSize = 5

// Page is a contiguous, 1-indexed slice of a plan.
type Page struct {
	Items   []Lesson
	HasMore bool
}

// Paginate slices lessons into the half-open range [(page-1)*size, page*size).
// Pages past the end yield an empty item list with HasMore false. HasMore is
// true iff lessons remain after the returned page.
func Paginate(lessons []Lesson, page, size int) (Page, error) {
	if page < 1 || size < 1 {
		return Page{}, ErrInvalidPage
	}

	total := len(lessons)
	// Compare page counts before multiplying so huge page numbers cannot
	// overflow into a valid range.
	if total == 0 || page-1 > (total-1)/size {
		return Page{Items: []Lesson{}}, nil
	}

	start := (page - 1) * size
	end := total
	if total-start > size {
		end = start + size
	}

	items := make([]Lesson, end-start)
	copy(items, lessons[start:end])

	return Page{
		Items:   items,
		HasMore: end < total,
	}, nil
}

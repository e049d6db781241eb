package directory

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ameliakool/SCMS/internal/models"
)

// SeedIfEmpty populates fixed sample data when every collection is empty,
// then flushes. Returns true when the seed was applied.
func (d *Directory) SeedIfEmpty(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.state.Students) > 0 || len(d.state.Classrooms) > 0 || len(d.state.Resources) > 0 {
		return false
	}

	d.state.Students = []*models.Student{
		{ID: "S1001", Name: "Josh Williams", Degree: "Animation", Email: "JWilliams@SmartUni.edu"},
		{ID: "S1002", Name: "Maria Kool", Degree: "Engineering", Email: "MKool@SmartUni.edu"},
		{ID: "S1003", Name: "Nico Robin", Degree: "Ancient History", Email: "NRobin@SmartUni.edu"},
		{ID: "S1004", Name: "Ben Leslie", Degree: "Culinary Arts", Email: "BLeslie@SmartUni.edu"},
	}

	d.state.Classrooms = []*models.Classroom{
		models.NewClassroom("R101", "Lecture Hall", 120),
		models.NewClassroom("R202", "Computer Lab", 30),
		models.NewClassroom("R305", "Seminar Room", 20),
	}

	tomorrow := time.Now().AddDate(0, 0, 1).Truncate(time.Minute)
	d.state.Classrooms[0].AddBooking("CS101", models.TimeInterval{Start: tomorrow, End: tomorrow.Add(2 * time.Hour)})
	dayAfter := tomorrow.AddDate(0, 0, 1)
	d.state.Classrooms[1].AddBooking("ENG201", models.TimeInterval{Start: dayAfter, End: dayAfter.Add(3 * time.Hour)})

	d.state.Resources = []*models.Resource{
		{ID: "B001", Name: "Advanced Java Programming", Type: "Book", Status: models.ResourceAvailable},
		{ID: "L002", Name: "Microscope", Type: "Lab Equipment", Status: models.ResourceAvailable},
		{ID: "C003", Name: "Arduino Kit", Type: "Electronics", Status: models.ResourceAvailable},
	}

	d.flushLocked(ctx)
	d.logger.Info("directory seeded with sample data", zap.Int("classrooms", len(d.state.Classrooms)))
	return true
}

package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolsite-backend-go/internal/services"
	"schoolsite-backend-go/internal/testutil"
)

func requireServiceError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	require.Error(t, err)
	var serr services.ServiceError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, status, serr.Status)
	assert.Equal(t, msg, serr.Message)
}

func TestTeachers_SoftDeleteRestoreCycle(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	teachers := services.NewTeachers(db)

	for i := 1; i <= 5; i++ {
		name := fmt.Sprintf("Teacher %d", i)
		created, err := teachers.Create(ctx, services.TeacherFields{Name: &name})
		require.NoError(t, err)
		require.Equal(t, int64(i), created.ID)
		require.NotNil(t, created.JoinDate)
		assert.True(t, created.IsActive)
	}

	require.NoError(t, teachers.SoftDelete(ctx, 5))

	_, err := teachers.Get(ctx, 5)
	requireServiceError(t, err, 404, "Teacher not found")

	alive, total, err := teachers.List(ctx, services.NewPage(1, 10), "")
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	for _, teacher := range alive {
		assert.NotEqual(t, int64(5), teacher.ID)
	}

	deleted, total, err := teachers.ListDeleted(ctx, services.NewPage(1, 10))
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, int64(5), deleted[0].ID)
	assert.NotNil(t, deleted[0].DeletedAt)

	requireServiceError(t, teachers.SoftDelete(ctx, 5), 404, "Teacher not found")

	restored, err := teachers.Restore(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, "Teacher 5", restored.Name)
	assert.Nil(t, restored.DeletedAt)

	_, err = teachers.Restore(ctx, 5)
	requireServiceError(t, err, 404, "Teacher not found in deleted list")

	_, err = teachers.Restore(ctx, 1)
	requireServiceError(t, err, 404, "Teacher not found in deleted list")

	requireServiceError(t, teachers.SoftDelete(ctx, 999), 404, "Teacher not found")

	require.NoError(t, teachers.SoftDelete(ctx, 5))
	deleted, total, err = teachers.ListDeleted(ctx, services.NewPage(1, 10))
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, int64(5), deleted[0].ID)
	require.NotNil(t, deleted[0].DeletedAt)
}

func TestTeachers_UpdateKeepsUnsetFields(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	subjects := services.NewSubjects(db)
	teachers := services.NewTeachers(db)

	math, err := subjects.Create(ctx, "Matematika")
	require.NoError(t, err)

	created, err := teachers.Create(ctx, services.TeacherFields{
		Name:      testutil.String("Siti"),
		NIP:       testutil.String("198001"),
		SubjectID: &math.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, created.SubjectName)
	assert.Equal(t, "Matematika", *created.SubjectName)

	updated, err := teachers.Update(ctx, created.ID, services.TeacherFields{Bio: testutil.String("Wali kelas")})
	require.NoError(t, err)
	assert.Equal(t, "Siti", updated.Name)
	require.NotNil(t, updated.NIP)
	assert.Equal(t, "198001", *updated.NIP)
	require.NotNil(t, updated.Bio)
	assert.Equal(t, "Wali kelas", *updated.Bio)

	_, err = teachers.Update(ctx, created.ID, services.TeacherFields{SubjectID: testutil.Int64(404)})
	requireServiceError(t, err, 400, "Subject not found")

	_, err = teachers.Create(ctx, services.TeacherFields{Name: testutil.String("  ")})
	requireServiceError(t, err, 400, "Name is required")

	require.NoError(t, teachers.SoftDelete(ctx, created.ID))
	_, err = teachers.Update(ctx, created.ID, services.TeacherFields{Bio: testutil.String("x")})
	requireServiceError(t, err, 404, "Teacher not found")
}

func TestStudents_NISNUniqueAmongAlive(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	students := services.NewStudents(db)

	first, err := students.Create(ctx, services.StudentInput{
		NISN: testutil.String("0051"), Name: "Andi", ClassName: "X-A", Gender: services.GenderMale,
	})
	require.NoError(t, err)

	_, err = students.Create(ctx, services.StudentInput{
		NISN: testutil.String("0051"), Name: "Budi", ClassName: "X-A", Gender: services.GenderMale,
	})
	requireServiceError(t, err, 409, "NISN already exists")

	require.NoError(t, students.SoftDelete(ctx, first.ID))

	second, err := students.Create(ctx, services.StudentInput{
		NISN: testutil.String("0051"), Name: "Budi", ClassName: "X-A", Gender: services.GenderMale,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = students.Restore(ctx, first.ID)
	require.Error(t, err)
	assert.True(t, services.IsStatus(err, 409))

	_, err = students.Get(ctx, first.ID)
	requireServiceError(t, err, 404, "Student not found")
}

func TestStudents_StatsAndOrdering(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	students := services.NewStudents(db)

	score := func(v float64) *float64 { return &v }
	rows := []services.StudentInput{
		{Name: "Citra", ClassName: "X-B", Gender: services.GenderFemale, ScoreUTS: score(70), ScoreUAS: score(75)},
		{Name: "Budi", ClassName: "X-A", Gender: services.GenderMale, ScoreUTS: score(80), ScoreUAS: score(90)},
		{Name: "Ani", ClassName: "X-A", Gender: services.GenderFemale, ScoreUTS: score(90), ScoreUAS: score(85)},
		{Name: "Dodi", ClassName: "X-A", Gender: services.GenderMale, ScoreUTS: score(10), ScoreUAS: score(10)},
	}
	var dodi int64
	for _, in := range rows {
		created, err := students.Create(ctx, in)
		require.NoError(t, err)
		if in.Name == "Dodi" {
			dodi = created.ID
		}
	}
	require.NoError(t, students.SoftDelete(ctx, dodi))

	list, total, err := students.List(ctx, services.NewPage(1, 10), "")
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Ani", "Budi", "Citra"}, []string{list[0].Name, list[1].Name, list[2].Name})

	classA, err := students.ByClass(ctx, "X-A")
	require.NoError(t, err)
	assert.Len(t, classA, 2)

	stats, err := students.Stats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "X-A", stats[0].ClassName)
	assert.Equal(t, 2, stats[0].TotalStudents)
	require.NotNil(t, stats[0].AvgUTS)
	assert.InDelta(t, 85.0, *stats[0].AvgUTS, 0.001)
	require.NotNil(t, stats[0].AvgUAS)
	assert.InDelta(t, 87.5, *stats[0].AvgUAS, 0.001)
	assert.Equal(t, 1, stats[0].MaleCount)
	assert.Equal(t, 1, stats[0].FemaleCount)
	assert.Equal(t, "X-B", stats[1].ClassName)
	assert.Equal(t, 0, stats[1].MaleCount)
}

func TestPosts_SlugsAndVisibility(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	posts := services.NewPosts(db)

	first, err := posts.Create(ctx, services.PostInput{Title: "Hari Guru Nasional", Content: "a"})
	require.NoError(t, err)
	assert.Equal(t, "hari-guru-nasional", first.Slug)
	assert.Equal(t, "draft", first.Status)

	second, err := posts.Create(ctx, services.PostInput{Title: "Hari Guru Nasional!", Content: "b", Status: "published"})
	require.NoError(t, err)
	assert.Equal(t, "hari-guru-nasional-2", second.Slug)

	_, err = posts.Create(ctx, services.PostInput{Title: "x", Content: "c", Status: "pending"})
	requireServiceError(t, err, 400, "Invalid status")

	public, total, err := posts.List(ctx, services.NewPage(1, 10), services.PostQuery{PublishedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, public, 1)
	assert.Equal(t, second.ID, public[0].ID)

	_, err = posts.Get(ctx, first.ID, true)
	requireServiceError(t, err, 404, "Post not found")

	_, err = posts.GetBySlug(ctx, "hari-guru-nasional", false)
	require.NoError(t, err)

	renamed, err := posts.Update(ctx, first.ID, services.PostUpdate{Title: testutil.String("Upacara Bendera")})
	require.NoError(t, err)
	assert.Equal(t, "upacara-bendera", renamed.Slug)

	_, err = posts.Update(ctx, first.ID, services.PostUpdate{Content: testutil.String("  ")})
	requireServiceError(t, err, 400, "Content is required")
	_, err = posts.Create(ctx, services.PostInput{Title: "Kosong", Content: " "})
	requireServiceError(t, err, 400, "Content is required")
	kept, err := posts.Get(ctx, first.ID, false)
	require.NoError(t, err)
	assert.Equal(t, "a", kept.Content)

	archived, err := posts.SetStatus(ctx, second.ID, "archived")
	require.NoError(t, err)
	assert.Equal(t, "archived", archived.Status)
	assert.Equal(t, second.Slug, archived.Slug)
}

func TestGalleries_ExplicitSlugConflict(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	galleries := services.NewGalleries(db)

	created, err := galleries.Create(ctx, services.GalleryFields{Title: testutil.String("Pentas Seni")})
	require.NoError(t, err)
	assert.Equal(t, "pentas-seni", created.Slug)

	_, err = galleries.Create(ctx, services.GalleryFields{
		Title: testutil.String("Lomba"),
		Slug:  testutil.String("pentas-seni"),
	})
	requireServiceError(t, err, 409, "Slug already exists")

	generated, err := galleries.Create(ctx, services.GalleryFields{Title: testutil.String("Pentas Seni")})
	require.NoError(t, err)
	assert.Equal(t, "pentas-seni-2", generated.Slug)
}

func TestIsUniqueViolation_ConstraintIsAuthoritative(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.InsertAccount(t, db, "race", "hash", nil, true)

	_, err := db.Exec(`INSERT INTO users (username, password_hash, full_name, created_at, updated_at)
VALUES ('race', 'hash', 'race', '2024-01-01 00:00:00', '2024-01-01 00:00:00')`)
	require.Error(t, err)
	assert.True(t, services.IsUniqueViolation(err))
	assert.False(t, services.IsUniqueViolation(nil))
}

func TestSearch_TreatsWildcardsLiterally(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	teachers := services.NewTeachers(db)
	posts := services.NewPosts(db)

	for _, name := range []string{"Budi Santoso", "Ani_Rahma", "Diskon 50% Kantin"} {
		_, err := teachers.Create(ctx, services.TeacherFields{Name: testutil.String(name)})
		require.NoError(t, err)
		_, err = posts.Create(ctx, services.PostInput{Title: name, Content: "isi", Status: "published"})
		require.NoError(t, err)
	}
	testutil.InsertAccount(t, db, "guru_satu", "hash", nil, true)
	testutil.InsertAccount(t, db, "gurudua", "hash", nil, true)

	tests := []struct {
		search string
		want   string
	}{
		{search: "_", want: "Ani_Rahma"},
		{search: "%", want: "Diskon 50% Kantin"},
		{search: "i_r", want: "Ani_Rahma"},
	}
	for _, tt := range tests {
		list, total, err := teachers.List(ctx, services.NewPage(1, 10), tt.search)
		require.NoError(t, err)
		require.Equal(t, 1, total, tt.search)
		assert.Equal(t, tt.want, list[0].Name)

		found, total, err := posts.List(ctx, services.NewPage(1, 10), services.PostQuery{PublishedOnly: true, Search: tt.search})
		require.NoError(t, err)
		require.Equal(t, 1, total, tt.search)
		assert.Equal(t, tt.want, found[0].Title)
	}

	accounts, total, err := services.NewAccounts(db).List(ctx, services.NewPage(1, 10), "_")
	require.NoError(t, err)
	require.Equal(t, 1, total)
	assert.Equal(t, "guru_satu", accounts[0].Username)
}

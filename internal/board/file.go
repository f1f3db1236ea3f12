package board

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/bayboard/internal/dateutil"
	"github.com/javiermolinar/bayboard/internal/task"
	"github.com/javiermolinar/bayboard/internal/timeline"
)

// ErrDuplicateID is returned when a board file reuses a section or resource id.
var ErrDuplicateID = errors.New("duplicate id")

// File is the on-disk board definition.
type File struct {
	Sections []SectionSpec `toml:"sections" validate:"required,min=1,dive"`
	Tasks    []TaskSpec    `toml:"tasks" validate:"dive"`
}

// SectionSpec describes a group of resources.
type SectionSpec struct {
	ID          string         `toml:"id" validate:"required"`
	Name        string         `toml:"name" validate:"required"`
	Description string         `toml:"description,omitempty"`
	Order       int            `toml:"order"`
	Color       string         `toml:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        string         `toml:"icon,omitempty"`
	Resources   []ResourceSpec `toml:"resources" validate:"dive"`
}

// ResourceSpec describes one schedulable operator or bay.
type ResourceSpec struct {
	ID       string        `toml:"id" validate:"required"`
	Name     string        `toml:"name" validate:"required"`
	Role     string        `toml:"role,omitempty"`
	Avatar   string        `toml:"avatar,omitempty" validate:"omitempty,url"`
	WorkDays []WorkDaySpec `toml:"work_days" validate:"dive"`
}

// WorkDaySpec is a shift for one weekday. Clock fields use HH:MM.
type WorkDaySpec struct {
	Day          string `toml:"day" validate:"required,weekday"`
	Start        string `toml:"start" validate:"required,clock"`
	End          string `toml:"end" validate:"required,clock"`
	Lunch        string `toml:"lunch,omitempty" validate:"omitempty,clock"`
	LunchMinutes int    `toml:"lunch_minutes,omitempty" validate:"min=0,max=240"`
}

// TaskSpec is a task as written in the board file. An empty id gets a UUID.
type TaskSpec struct {
	ID          string    `toml:"id,omitempty"`
	Resource    string    `toml:"resource" validate:"required"`
	Kind        string    `toml:"kind,omitempty"`
	OrderID     string    `toml:"order_id,omitempty"`
	Description string    `toml:"description,omitempty"`
	Start       time.Time `toml:"start" validate:"required"`
	End         time.Time `toml:"end" validate:"required,gtfield=Start"`
	Status      string    `toml:"status,omitempty" validate:"omitempty,oneof=pending in_progress paused finished"`
	Subtasks    []string  `toml:"subtasks,omitempty"`
	Comments    []string  `toml:"comments,omitempty"`
}

var validate = newValidator()

// newValidator panics when a tag cannot be registered; the tags are fixed
// at compile time, so a failure is a programming error.
func newValidator() *validator.Validate {
	v := validator.New()
	tags := map[string]validator.Func{
		"clock": func(fl validator.FieldLevel) bool {
			_, err := timeline.ParseClock(fl.Field().String())
			return err == nil
		},
		"weekday": func(fl validator.FieldLevel) bool {
			_, err := dateutil.ParseWeekday(fl.Field().String())
			return err == nil
		},
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("registering %q validation: %v", tag, err))
		}
	}
	return v
}

// LoadFile reads and validates a TOML board file.
func LoadFile(path string) (*task.Board, []*task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading board file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a TOML board definition.
func Parse(data []byte) (*task.Board, []*task.Task, error) {
	var f File
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parsing board file: %w", err)
	}
	return f.Build()
}

// Build validates f and converts it to domain values.
func (f *File) Build() (*task.Board, []*task.Task, error) {
	if err := validateStruct(f); err != nil {
		return nil, nil, fmt.Errorf("invalid board file: %w", err)
	}

	b := &task.Board{}
	sectionIDs := make(map[string]bool)
	resourceIDs := make(map[string]bool)
	for _, ss := range f.Sections {
		if sectionIDs[ss.ID] {
			return nil, nil, fmt.Errorf("%w: section %s", ErrDuplicateID, ss.ID)
		}
		sectionIDs[ss.ID] = true

		sec := &task.Section{
			ID:          ss.ID,
			Name:        ss.Name,
			Description: ss.Description,
			Order:       ss.Order,
			Color:       ss.Color,
			Icon:        ss.Icon,
		}
		for _, rs := range ss.Resources {
			if resourceIDs[rs.ID] {
				return nil, nil, fmt.Errorf("%w: resource %s", ErrDuplicateID, rs.ID)
			}
			resourceIDs[rs.ID] = true

			res, err := rs.resource()
			if err != nil {
				return nil, nil, err
			}
			sec.Resources = append(sec.Resources, res)
		}
		b.Sections = append(b.Sections, sec)
	}

	tasks := make([]*task.Task, 0, len(f.Tasks))
	for _, ts := range f.Tasks {
		t, err := ts.task(b)
		if err != nil {
			return nil, nil, err
		}
		tasks = append(tasks, t)
	}
	return b, tasks, nil
}

func (rs ResourceSpec) resource() (*task.Resource, error) {
	res := &task.Resource{ID: rs.ID, Name: rs.Name, Role: rs.Role, Avatar: rs.Avatar}
	for _, ws := range rs.WorkDays {
		// already validated, errors are impossible here
		wd, _ := dateutil.ParseWeekday(ws.Day)
		start, _ := timeline.ParseClock(ws.Start)
		end, _ := timeline.ParseClock(ws.End)

		day := task.WorkDay{Weekday: wd, ShiftStart: start, ShiftEnd: end}
		if ws.LunchMinutes > 0 {
			if ws.Lunch == "" {
				return nil, fmt.Errorf("resource %s: %s lunch_minutes set without lunch", rs.ID, ws.Day)
			}
			day.LunchStart, _ = timeline.ParseClock(ws.Lunch)
			day.LunchMinutes = ws.LunchMinutes
		}
		res.WorkDays = append(res.WorkDays, day)
	}
	return res, nil
}

func (ts TaskSpec) task(b *task.Board) (*task.Task, error) {
	sec, ok := b.SectionOf(ts.Resource)
	if !ok {
		return nil, fmt.Errorf("task %s: %w: %s", ts.ID, task.ErrUnknownResource, ts.Resource)
	}
	status, err := task.ParseStatus(ts.Status)
	if err != nil {
		return nil, err
	}
	id := ts.ID
	if id == "" {
		id = uuid.NewString()
	}
	t := &task.Task{
		ID:          id,
		ResourceID:  ts.Resource,
		SectionID:   sec.ID,
		Kind:        ts.Kind,
		OrderID:     ts.OrderID,
		Description: ts.Description,
		Start:       ts.Start,
		End:         ts.End,
		Status:      status,
		Subtasks:    ts.Subtasks,
		Comments:    ts.Comments,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// validateStruct runs the tag validation and flattens the errors.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q (value: %v)", e.Namespace(), e.Tag(), e.Value()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// Encode renders a board and its tasks back into the file format.
func Encode(b *task.Board, tasks []*task.Task) ([]byte, error) {
	var f File
	for _, sec := range b.Sections {
		ss := SectionSpec{
			ID:          sec.ID,
			Name:        sec.Name,
			Description: sec.Description,
			Order:       sec.Order,
			Color:       sec.Color,
			Icon:        sec.Icon,
		}
		for _, r := range sec.Resources {
			rs := ResourceSpec{ID: r.ID, Name: r.Name, Role: r.Role, Avatar: r.Avatar}
			for _, wd := range r.WorkDays {
				ws := WorkDaySpec{
					Day:   strings.ToLower(wd.Weekday.String()),
					Start: timeline.FormatClock(wd.ShiftStart),
					End:   timeline.FormatClock(wd.ShiftEnd),
				}
				if wd.HasLunch() {
					ws.Lunch = timeline.FormatClock(wd.LunchStart)
					ws.LunchMinutes = wd.LunchMinutes
				}
				rs.WorkDays = append(rs.WorkDays, ws)
			}
			ss.Resources = append(ss.Resources, rs)
		}
		f.Sections = append(f.Sections, ss)
	}
	for _, t := range tasks {
		f.Tasks = append(f.Tasks, TaskSpec{
			ID:          t.ID,
			Resource:    t.ResourceID,
			Kind:        t.Kind,
			OrderID:     t.OrderID,
			Description: t.Description,
			Start:       t.Start,
			End:         t.End,
			Status:      string(t.Status),
			Subtasks:    t.Subtasks,
			Comments:    t.Comments,
		})
	}
	return toml.Marshal(f)
}

// SaveFile encodes the board and replaces path atomically.
func SaveFile(path string, b *task.Board, tasks []*task.Task) error {
	data, err := Encode(b, tasks)
	if err != nil {
		return fmt.Errorf("encoding board: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating board directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing board file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing board file: %w", err)
	}
	return nil
}

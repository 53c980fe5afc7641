package v1alpha1

import (
	"context"
	"math"

	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper"
)

// HandlerConfig holds dependencies for the clock handler
type HandlerConfig struct {
	ClockService timekeeper.Service
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.ClockService == nil {
		return errors.InvalidArgument("clock service is required")
	}
	return nil
}

// Handler implements ClockServiceServer
type Handler struct {
	clock timekeeper.Service
}

var _ ClockServiceServer = (*Handler)(nil)

// NewHandler creates a new clock handler
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid handler config")
	}

	return &Handler{clock: cfg.ClockService}, nil
}

// GetTime returns the current clock
func (h *Handler) GetTime(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.clock.GetTime(ctx, &timekeeper.GetTimeInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"time": timeFields(out.Time)})
}

// Skip jumps forward by {"seconds", "minutes", "hours"}; missing parts are zero
func (h *Handler) Skip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := newFieldReader(req)
	input := &timekeeper.SkipInput{
		Seconds: fields.number("seconds"),
		Minutes: fields.number("minutes"),
		Hours:   fields.number("hours"),
	}
	if err := fields.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.clock.Skip(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(skipFields(out))
}

// SkipToMorning jumps to the next wake-up time
func (h *Handler) SkipToMorning(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.clock.SkipToMorning(ctx, &timekeeper.SkipToMorningInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(skipFields(out))
}

// SkipToHour jumps to the next occurrence of {"hour"}
func (h *Handler) SkipToHour(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := newFieldReader(req)
	hour := fields.requiredNumber("hour")
	if err := fields.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.clock.SkipToHour(ctx, &timekeeper.SkipToHourInput{Hour: hour})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(skipFields(out))
}

// Sleep restores the student and skips to morning
func (h *Handler) Sleep(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.clock.Sleep(ctx, &timekeeper.SleepInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{
		"time":   timeFields(out.Time),
		"ticks":  out.Ticks,
		"vitals": vitalsFields(out.Vitals),
	})
}

// SetTimeScale sets {"scale"}
func (h *Handler) SetTimeScale(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := newFieldReader(req)
	scale := fields.requiredNumber("scale")
	if err := fields.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.clock.SetTimeScale(ctx, &timekeeper.SetTimeScaleInput{Scale: scale})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"time": timeFields(out.Time)})
}

// Pause stops scaled time
func (h *Handler) Pause(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.clock.Pause(ctx, &timekeeper.PauseInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"time": timeFields(out.Time)})
}

// Resume restarts scaled time with an optional {"scale"}
func (h *Handler) Resume(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := newFieldReader(req)
	input := &timekeeper.ResumeInput{}
	if fields.has("scale") {
		scale := fields.number("scale")
		input.Scale = &scale
	}
	if err := fields.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.clock.Resume(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"time": timeFields(out.Time)})
}

// AttendClass checks in to {"class_name"}, or the class in session when omitted
func (h *Handler) AttendClass(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := newFieldReader(req)
	name := fields.str("class_name")
	if err := fields.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.clock.AttendClass(ctx, &timekeeper.AttendClassInput{ClassName: name})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{
		"record": recordFields(out.Record),
		"class":  classFields(out.Class),
		"time":   timeFields(out.Time),
		"ticks":  out.Ticks,
	})
}

// GetStudent returns stats and attendance
func (h *Handler) GetStudent(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.clock.GetStudent(ctx, &timekeeper.GetStudentInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}

	attendance := make([]any, 0, len(out.Attendance))
	for _, s := range out.Attendance {
		attendance = append(attendance, map[string]any{
			"class_name":     s.ClassName,
			"attended_hours": s.AttendedHours,
			"total_hours":    s.TotalHours,
			"percentage":     s.Percentage,
		})
	}

	records := make([]any, 0, len(out.Records))
	for _, r := range out.Records {
		records = append(records, recordFields(r))
	}

	return respond(map[string]any{
		"student_id": out.StudentID,
		"vitals":     vitalsFields(out.Vitals),
		"attendance": attendance,
		"records":    records,
	})
}

// Talk raises {"npc_id"}'s relationship by {"increase"}, once per day
func (h *Handler) Talk(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := newFieldReader(req)
	input := &timekeeper.TalkInput{
		NPCID:    fields.requiredStr("npc_id"),
		Increase: fields.integer("increase"),
	}
	if err := fields.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.clock.Talk(ctx, input)
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{
		"npc": map[string]any{
			"id":           out.NPC.ID,
			"name":         out.NPC.Name,
			"relationship": out.NPC.Relationship,
			"talked_today": out.NPC.TalkedToday,
		},
		"raised": out.Raised,
	})
}

// Eat restores {"amount"} hunger
func (h *Handler) Eat(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := newFieldReader(req)
	amount := fields.requiredInteger("amount")
	if err := fields.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.clock.Eat(ctx, &timekeeper.EatInput{Amount: amount})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"vitals": vitalsFields(out.Vitals)})
}

// Drink restores {"amount"} thirst
func (h *Handler) Drink(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fields := newFieldReader(req)
	amount := fields.requiredInteger("amount")
	if err := fields.err(); err != nil {
		return nil, errors.ToGRPCError(err)
	}

	out, err := h.clock.Drink(ctx, &timekeeper.DrinkInput{Amount: amount})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{"vitals": vitalsFields(out.Vitals)})
}

// SaveState persists the clock
func (h *Handler) SaveState(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := h.clock.SaveState(ctx, &timekeeper.SaveStateInput{})
	if err != nil {
		return nil, errors.ToGRPCError(err)
	}
	return respond(map[string]any{
		"state": map[string]any{
			"day_index":   out.State.DayIndex,
			"seconds":     out.State.Seconds,
			"day_of_week": out.State.DayOfWeek.String(),
			"time_scale":  out.State.TimeScale,
		},
		"saved_at": out.SavedAt.UTC().Format(timeLayout),
	})
}

func respond(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.ToGRPCError(errors.WrapWithCode(err, errors.CodeInternal, "failed to encode response"))
	}
	return s, nil
}

// fieldReader pulls typed values out of a request struct, collecting
// type errors into one validation error
type fieldReader struct {
	fields map[string]*structpb.Value
	vb     *errors.ValidationBuilder
}

func newFieldReader(req *structpb.Struct) *fieldReader {
	return &fieldReader{
		fields: req.GetFields(),
		vb:     errors.NewValidationBuilder(),
	}
}

func (r *fieldReader) has(key string) bool {
	v, ok := r.fields[key]
	if !ok {
		return false
	}
	_, null := v.GetKind().(*structpb.Value_NullValue)
	return !null
}

func (r *fieldReader) number(key string) float64 {
	if !r.has(key) {
		return 0
	}
	v, ok := r.fields[key].GetKind().(*structpb.Value_NumberValue)
	if !ok {
		r.vb.Field(key, "must be a number")
		return 0
	}
	return v.NumberValue
}

func (r *fieldReader) requiredNumber(key string) float64 {
	if !r.has(key) {
		r.vb.RequiredField(key)
		return 0
	}
	return r.number(key)
}

func (r *fieldReader) integer(key string) int {
	n := r.number(key)
	if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
		r.vb.Field(key, "must be an integer")
		return 0
	}
	return int(n)
}

func (r *fieldReader) requiredInteger(key string) int {
	if !r.has(key) {
		r.vb.RequiredField(key)
		return 0
	}
	return r.integer(key)
}

func (r *fieldReader) str(key string) string {
	if !r.has(key) {
		return ""
	}
	v, ok := r.fields[key].GetKind().(*structpb.Value_StringValue)
	if !ok {
		r.vb.Field(key, "must be a string")
		return ""
	}
	return v.StringValue
}

func (r *fieldReader) requiredStr(key string) string {
	if !r.has(key) {
		r.vb.RequiredField(key)
		return ""
	}
	_, isString := r.fields[key].GetKind().(*structpb.Value_StringValue)
	s := r.str(key)
	if isString && s == "" {
		r.vb.RequiredField(key)
	}
	return s
}

func (r *fieldReader) err() error {
	return r.vb.Build()
}

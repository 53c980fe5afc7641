package v1alpha1_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/entities/campus"
	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/handlers/daytime/v1alpha1"
	"github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper"
	timekeepermock "github.com/KirkDiggler/campus-api/internal/orchestrators/timekeeper/mock"
	"github.com/KirkDiggler/campus-api/internal/services/social"
	"github.com/KirkDiggler/campus-api/internal/services/vitals"
)

type HandlerTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockClock *timekeepermock.MockService
	handler   *v1alpha1.Handler
	ctx       context.Context
	view      timekeeper.TimeView
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockClock = timekeepermock.NewMockService(s.ctrl)
	s.ctx = context.Background()

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		ClockService: s.mockClock,
	})
	s.Require().NoError(err)
	s.handler = handler

	s.view = timekeeper.TimeView{
		Snapshot: daytime.Snapshot{
			Moment: daytime.Moment{
				DayIndex:  1,
				Seconds:   9 * 3600,
				DayOfWeek: daytime.Monday,
			},
			TimeScale: 60,
			Phase:     132,
		},
		Clock:    "09:00",
		DayCount: "02",
		Period:   daytime.PeriodMorning,
	}
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) requireCode(err error, want codes.Code) {
	s.Require().Error(err)
	st, ok := status.FromError(err)
	s.Require().True(ok, "expected a gRPC status error, got %v", err)
	s.Equal(want, st.Code())
}

func (s *HandlerTestSuite) mustStruct(m map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(m)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) TestNewHandler_Validation() {
	_, err := v1alpha1.NewHandler(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.Require().Error(err)
	s.Contains(err.Error(), "clock service is required")
}

func (s *HandlerTestSuite) TestGetTime() {
	s.mockClock.EXPECT().
		GetTime(s.ctx, &timekeeper.GetTimeInput{}).
		Return(&timekeeper.GetTimeOutput{Time: s.view}, nil)

	resp, err := s.handler.GetTime(s.ctx, &emptypb.Empty{})
	s.Require().NoError(err)

	got := resp.AsMap()["time"].(map[string]any)
	s.Equal("09:00", got["clock"])
	s.Equal("02", got["day_count"])
	s.Equal("Monday", got["day_of_week"])
	s.Equal("morning", got["period"])
	s.Equal(float64(9), got["hours"])
	s.Equal(float64(132), got["phase"])
	s.Equal(false, got["paused"])
}

func (s *HandlerTestSuite) TestSkip_ParsesParts() {
	s.mockClock.EXPECT().
		Skip(s.ctx, &timekeeper.SkipInput{Minutes: 30, Hours: 2}).
		Return(&timekeeper.SkipOutput{Time: s.view, Ticks: 10}, nil)

	resp, err := s.handler.Skip(s.ctx, s.mustStruct(map[string]any{
		"minutes": 30,
		"hours":   2,
	}))
	s.Require().NoError(err)
	s.Equal(float64(10), resp.AsMap()["ticks"])
}

func (s *HandlerTestSuite) TestSkip_RejectsNonNumber() {
	_, err := s.handler.Skip(s.ctx, s.mustStruct(map[string]any{"hours": "two"}))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestSkip_ServiceError() {
	s.mockClock.EXPECT().
		Skip(s.ctx, &timekeeper.SkipInput{Seconds: -1}).
		Return(nil, errors.InvalidArgument("seconds must not be negative"))

	_, err := s.handler.Skip(s.ctx, s.mustStruct(map[string]any{"seconds": -1}))
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestSkip_TooFar() {
	s.mockClock.EXPECT().
		Skip(s.ctx, &timekeeper.SkipInput{Hours: 1e12}).
		Return(nil, errors.OutOfRangef("cannot skip %vs at once", 3.6e15))

	_, err := s.handler.Skip(s.ctx, s.mustStruct(map[string]any{"hours": 1e12}))
	s.requireCode(err, codes.OutOfRange)
}

func (s *HandlerTestSuite) TestSkipToMorning() {
	s.mockClock.EXPECT().
		SkipToMorning(s.ctx, &timekeeper.SkipToMorningInput{}).
		Return(&timekeeper.SkipOutput{Time: s.view, Ticks: 96}, nil)

	resp, err := s.handler.SkipToMorning(s.ctx, &emptypb.Empty{})
	s.Require().NoError(err)
	s.Equal(float64(96), resp.AsMap()["ticks"])
}

func (s *HandlerTestSuite) TestSkipToHour_RequiresHour() {
	_, err := s.handler.SkipToHour(s.ctx, &structpb.Struct{})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestSkipToHour_OutOfRange() {
	s.mockClock.EXPECT().
		SkipToHour(s.ctx, &timekeeper.SkipToHourInput{Hour: 24}).
		Return(nil, errors.OutOfRangef("hour %v outside [0, 24)", 24))

	_, err := s.handler.SkipToHour(s.ctx, s.mustStruct(map[string]any{"hour": 24}))
	s.requireCode(err, codes.OutOfRange)
}

func (s *HandlerTestSuite) TestSleep() {
	s.mockClock.EXPECT().
		Sleep(s.ctx, &timekeeper.SleepInput{}).
		Return(&timekeeper.SleepOutput{
			Time:  s.view,
			Ticks: 4,
			Vitals: vitals.Status{
				Health:    campus.NewStat(100),
				Happiness: campus.NewStat(100),
				Hunger:    campus.Stat{Max: 24, Current: 20},
				Thirst:    campus.Stat{Max: 24, Current: 16},
			},
		}, nil)

	resp, err := s.handler.Sleep(s.ctx, &emptypb.Empty{})
	s.Require().NoError(err)

	v := resp.AsMap()["vitals"].(map[string]any)
	s.Equal(float64(100), v["health"].(map[string]any)["current"])
	s.Equal(float64(16), v["thirst"].(map[string]any)["current"])
	s.Equal(false, v["dead"])
}

func (s *HandlerTestSuite) TestSleep_Dead() {
	s.mockClock.EXPECT().
		Sleep(s.ctx, &timekeeper.SleepInput{}).
		Return(nil, errors.FailedPrecondition("student is dead"))

	_, err := s.handler.Sleep(s.ctx, &emptypb.Empty{})
	s.requireCode(err, codes.FailedPrecondition)
}

func (s *HandlerTestSuite) TestSetTimeScale() {
	s.mockClock.EXPECT().
		SetTimeScale(s.ctx, &timekeeper.SetTimeScaleInput{Scale: 0}).
		Return(&timekeeper.TimeScaleOutput{Time: s.view}, nil)

	_, err := s.handler.SetTimeScale(s.ctx, s.mustStruct(map[string]any{"scale": 0}))
	s.Require().NoError(err)

	_, err = s.handler.SetTimeScale(s.ctx, &structpb.Struct{})
	s.requireCode(err, codes.InvalidArgument)
}

func (s *HandlerTestSuite) TestPause() {
	paused := s.view
	paused.TimeScale = 0
	s.mockClock.EXPECT().
		Pause(s.ctx, &timekeeper.PauseInput{}).
		Return(&timekeeper.TimeScaleOutput{Time: paused}, nil)

	resp, err := s.handler.Pause(s.ctx, &emptypb.Empty{})
	s.Require().NoError(err)
	s.Equal(true, resp.AsMap()["time"].(map[string]any)["paused"])
}

func (s *HandlerTestSuite) TestResume() {
	s.Run("default scale", func() {
		s.mockClock.EXPECT().
			Resume(s.ctx, &timekeeper.ResumeInput{}).
			Return(&timekeeper.TimeScaleOutput{Time: s.view}, nil)

		_, err := s.handler.Resume(s.ctx, &structpb.Struct{})
		s.Require().NoError(err)
	})

	s.Run("null scale is default", func() {
		s.mockClock.EXPECT().
			Resume(s.ctx, &timekeeper.ResumeInput{}).
			Return(&timekeeper.TimeScaleOutput{Time: s.view}, nil)

		_, err := s.handler.Resume(s.ctx, s.mustStruct(map[string]any{"scale": nil}))
		s.Require().NoError(err)
	})

	s.Run("explicit scale", func() {
		scale := 50.0
		s.mockClock.EXPECT().
			Resume(s.ctx, &timekeeper.ResumeInput{Scale: &scale}).
			Return(&timekeeper.TimeScaleOutput{Time: s.view}, nil)

		_, err := s.handler.Resume(s.ctx, s.mustStruct(map[string]any{"scale": 50}))
		s.Require().NoError(err)
	})
}

func (s *HandlerTestSuite) TestAttendClass() {
	class := campus.Class{
		Name:      "Physics",
		DayOfWeek: daytime.Monday,
		StartHour: 9,
		EndHour:   11,
		Room:      "B2",
	}
	recordedAt := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	s.mockClock.EXPECT().
		AttendClass(s.ctx, &timekeeper.AttendClassInput{ClassName: "Physics"}).
		Return(&timekeeper.AttendClassOutput{
			Record: campus.AttendanceRecord{
				ID:             "att_1",
				StudentID:      "student",
				ClassName:      "Physics",
				DayOfWeek:      daytime.Monday,
				DayIndex:       1,
				AttendanceHour: 9.25,
				Attended:       true,
				RecordedAt:     recordedAt,
			},
			Class: class,
			Time:  s.view,
			Ticks: 7,
		}, nil)

	resp, err := s.handler.AttendClass(s.ctx, s.mustStruct(map[string]any{"class_name": "Physics"}))
	s.Require().NoError(err)

	got := resp.AsMap()
	record := got["record"].(map[string]any)
	s.Equal(true, record["attended"])
	s.Equal(9.25, record["attendance_hour"])
	s.Equal("2026-01-05T09:00:00Z", record["recorded_at"])
	s.Equal("09:00 - 11:00", got["class"].(map[string]any)["time"])
}

func (s *HandlerTestSuite) TestAttendClass_Errors() {
	s.Run("window closed", func() {
		s.mockClock.EXPECT().
			AttendClass(s.ctx, &timekeeper.AttendClassInput{}).
			Return(nil, errors.FailedPrecondition("attendance window closed"))

		_, err := s.handler.AttendClass(s.ctx, &structpb.Struct{})
		s.requireCode(err, codes.FailedPrecondition)
	})

	s.Run("class name must be a string", func() {
		_, err := s.handler.AttendClass(s.ctx, s.mustStruct(map[string]any{"class_name": 3}))
		s.requireCode(err, codes.InvalidArgument)
	})
}

func (s *HandlerTestSuite) TestGetStudent() {
	s.mockClock.EXPECT().
		GetStudent(s.ctx, &timekeeper.GetStudentInput{}).
		Return(&timekeeper.GetStudentOutput{
			StudentID: "student",
			Vitals:    vitals.Status{Health: campus.NewStat(100)},
			Attendance: []timekeeper.ClassSummary{
				{ClassName: "Physics", AttendedHours: 2, TotalHours: 4, Percentage: 50},
			},
		}, nil)

	resp, err := s.handler.GetStudent(s.ctx, &emptypb.Empty{})
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal("student", got["student_id"])
	attendance := got["attendance"].([]any)
	s.Require().Len(attendance, 1)
	s.Equal(float64(50), attendance[0].(map[string]any)["percentage"])
	s.Empty(got["records"])
}

func (s *HandlerTestSuite) TestTalk() {
	s.Run("success", func() {
		s.mockClock.EXPECT().
			Talk(s.ctx, &timekeeper.TalkInput{NPCID: "npc_ana", Increase: 2}).
			Return(&timekeeper.TalkOutput{
				NPC:    social.NPC{ID: "npc_ana", Name: "Ana", Relationship: 5, TalkedToday: true},
				Raised: true,
			}, nil)

		resp, err := s.handler.Talk(s.ctx, s.mustStruct(map[string]any{
			"npc_id":   "npc_ana",
			"increase": 2,
		}))
		s.Require().NoError(err)
		s.Equal(true, resp.AsMap()["raised"])
		s.Equal(float64(5), resp.AsMap()["npc"].(map[string]any)["relationship"])
	})

	s.Run("requires npc id", func() {
		_, err := s.handler.Talk(s.ctx, s.mustStruct(map[string]any{"npc_id": ""}))
		s.requireCode(err, codes.InvalidArgument)
	})

	s.Run("increase must be whole", func() {
		_, err := s.handler.Talk(s.ctx, s.mustStruct(map[string]any{
			"npc_id":   "npc_ana",
			"increase": 1.5,
		}))
		s.requireCode(err, codes.InvalidArgument)
	})

	s.Run("unknown npc", func() {
		s.mockClock.EXPECT().
			Talk(s.ctx, &timekeeper.TalkInput{NPCID: "npc_bob"}).
			Return(nil, errors.NotFoundf("npc %s not found", "npc_bob"))

		_, err := s.handler.Talk(s.ctx, s.mustStruct(map[string]any{"npc_id": "npc_bob"}))
		s.requireCode(err, codes.NotFound)
	})
}

func (s *HandlerTestSuite) TestSaveState() {
	savedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().
		SaveState(s.ctx, &timekeeper.SaveStateInput{}).
		Return(&timekeeper.SaveStateOutput{
			State: daytime.State{
				DayIndex:  3,
				Seconds:   3600,
				DayOfWeek: daytime.Wednesday,
				TimeScale: 60,
			},
			SavedAt: savedAt,
		}, nil)

	resp, err := s.handler.SaveState(s.ctx, &emptypb.Empty{})
	s.Require().NoError(err)

	got := resp.AsMap()
	s.Equal("2026-03-01T12:00:00Z", got["saved_at"])
	s.Equal("Wednesday", got["state"].(map[string]any)["day_of_week"])
}

func (s *HandlerTestSuite) TestEatAndDrink() {
	stats := vitals.Status{
		Health: campus.Stat{Max: 100, Current: 90},
		Hunger: campus.Stat{Max: 24, Current: 20},
		Thirst: campus.Stat{Max: 24, Current: 24},
	}

	s.Run("eat", func() {
		s.mockClock.EXPECT().
			Eat(s.ctx, &timekeeper.EatInput{Amount: 6}).
			Return(&timekeeper.VitalsOutput{Vitals: stats}, nil)

		resp, err := s.handler.Eat(s.ctx, s.mustStruct(map[string]any{"amount": 6}))
		s.Require().NoError(err)
		hunger := resp.AsMap()["vitals"].(map[string]any)["hunger"].(map[string]any)
		s.Equal(float64(20), hunger["current"])
	})

	s.Run("drink", func() {
		s.mockClock.EXPECT().
			Drink(s.ctx, &timekeeper.DrinkInput{Amount: 3}).
			Return(&timekeeper.VitalsOutput{Vitals: stats}, nil)

		resp, err := s.handler.Drink(s.ctx, s.mustStruct(map[string]any{"amount": 3}))
		s.Require().NoError(err)
		thirst := resp.AsMap()["vitals"].(map[string]any)["thirst"].(map[string]any)
		s.Equal(float64(24), thirst["current"])
	})

	s.Run("amount is required", func() {
		_, err := s.handler.Eat(s.ctx, s.mustStruct(map[string]any{}))
		s.requireCode(err, codes.InvalidArgument)
	})

	s.Run("amount must be whole", func() {
		_, err := s.handler.Drink(s.ctx, s.mustStruct(map[string]any{"amount": 0.5}))
		s.requireCode(err, codes.InvalidArgument)
	})

	s.Run("dead student", func() {
		s.mockClock.EXPECT().
			Eat(s.ctx, &timekeeper.EatInput{Amount: 1}).
			Return(nil, errors.FailedPrecondition("student is dead"))

		_, err := s.handler.Eat(s.ctx, s.mustStruct(map[string]any{"amount": 1}))
		s.requireCode(err, codes.FailedPrecondition)
	})
}

// TestOverGRPC drives the hand-written service descriptor through a real
// server and client connection.
func (s *HandlerTestSuite) TestOverGRPC() {
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	v1alpha1.RegisterClockServiceServer(srv, s.handler)
	go func() { _ = srv.Serve(lis) }()
	defer srv.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()

	client := v1alpha1.NewClockServiceClient(conn)

	s.mockClock.EXPECT().
		GetTime(gomock.Any(), &timekeeper.GetTimeInput{}).
		Return(&timekeeper.GetTimeOutput{Time: s.view}, nil)

	resp, err := client.Call(s.ctx, "GetTime", nil)
	s.Require().NoError(err)
	s.Equal("09:00", resp.AsMap()["time"].(map[string]any)["clock"])

	s.mockClock.EXPECT().
		SkipToHour(gomock.Any(), &timekeeper.SkipToHourInput{Hour: 30}).
		Return(nil, errors.OutOfRangef("hour %v outside [0, 24)", 30))

	_, err = client.Call(s.ctx, "SkipToHour", s.mustStruct(map[string]any{"hour": 30}))
	s.requireCode(err, codes.OutOfRange)
	s.True(errors.IsOutOfRange(errors.FromGRPCError(err)))
}

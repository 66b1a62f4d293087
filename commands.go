package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/spf13/pflag"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/usecase"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/internal/viewmodel"
	"github.com/vcscsvcscs/Healthcare-challenge-GDE-MIT/apps/mobile-core/pkg/model"
)

const dateLayout = "2006-01-02"

func newFlags(name string) *pflag.FlagSet {
	return pflag.NewFlagSet(name, pflag.ContinueOnError)
}

// parseDate accepts YYYY-MM-DD; "" is the zero time
func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s: expected YYYY-MM-DD", flag)
	}
	return t, nil
}

// endOfDay makes a --to date inclusive
func endOfDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.Add(24*time.Hour - time.Nanosecond)
}

func runRegister(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("register")
	username := fs.String("username", "", "account name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password")
	fullName := fs.String("name", "", "full name")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := c.app.Auth.Register(ctx, &model.RegisterRequest{
		Username: *username,
		Email:    *email,
		Password: *password,
		FullName: *fullName,
	})
	if err != nil {
		return err
	}
	return c.printJSON(user)
}

func runLogin(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("login")
	username := fs.String("username", "", "account name")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := c.app.Auth.Login(ctx, *username, *password)
	if err != nil {
		return err
	}
	return c.printJSON(user)
}

func runLogout(ctx context.Context, c *cli, args []string) error {
	if err := c.app.Auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "signed out")
	return nil
}

func runWhoami(ctx context.Context, c *cli, args []string) error {
	user, err := c.app.Auth.Restore(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return errNotSignedIn
	}
	return c.printJSON(user)
}

func runPredict(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("predict")
	age := fs.Int("age", 0, "age in years")
	height := fs.Float64("height", 0, "height in cm")
	weight := fs.Float64("weight", 0, "weight in kg")
	smoking := fs.Bool("smoking", false, "current smoker")
	exercise := fs.Float64("exercise", 0, "exercise hours per week")
	systolic := fs.Int("systolic", 0, "systolic blood pressure")
	diastolic := fs.Int("diastolic", 0, "diastolic blood pressure")
	cholesterol := fs.Float64("cholesterol", 0, "total cholesterol mg/dL")
	glucose := fs.Float64("glucose", 0, "fasting glucose mg/dL")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := c.requireUser(ctx); err != nil {
		return err
	}

	advanced := fs.Changed("systolic") || fs.Changed("diastolic") || fs.Changed("cholesterol") || fs.Changed("glucose")
	if !advanced {
		p, err := c.app.Health.CreateSimplePrediction(ctx, &model.SimplePredictionRequest{
			Age:                  *age,
			HeightCm:             *height,
			WeightKg:             *weight,
			Smoking:              *smoking,
			ExerciseHoursPerWeek: *exercise,
		})
		if err != nil {
			return err
		}
		return c.printJSON(p)
	}

	req := &model.PredictionRequest{
		Age:                  *age,
		HeightCm:             *height,
		WeightKg:             *weight,
		Smoking:              *smoking,
		ExerciseHoursPerWeek: *exercise,
	}
	if fs.Changed("systolic") {
		req.SystolicBP = systolic
	}
	if fs.Changed("diastolic") {
		req.DiastolicBP = diastolic
	}
	if fs.Changed("cholesterol") {
		req.Cholesterol = cholesterol
	}
	if fs.Changed("glucose") {
		req.Glucose = glucose
	}

	p, err := c.app.Health.CreatePrediction(ctx, req)
	if err != nil {
		return err
	}
	return c.printJSON(p)
}

func runPredictions(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("predictions")
	skip := fs.Int("skip", 0, "number of predictions to skip")
	limit := fs.Int("limit", 20, "page size")
	id := fs.Int64("id", 0, "show a single prediction")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.Changed("id") {
		p, err := c.app.Health.SelectPrediction(ctx, *id)
		if err != nil {
			return err
		}
		return c.printJSON(p)
	}

	list, err := c.app.Health.LoadPredictions(ctx, usecase.GetPredictionsInput{Skip: *skip, Limit: *limit})
	if err != nil {
		return err
	}
	return c.printJSON(list)
}

func runStats(ctx context.Context, c *cli, args []string) error {
	stats, err := c.app.Health.LoadStats(ctx)
	if err != nil {
		return err
	}
	return c.printJSON(stats)
}

func runChat(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("chat")
	status := fs.Bool("status", false, "show assistant availability instead")
	maxTokens := fs.Int("max-tokens", 0, "response token limit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *status {
		st, err := c.app.Chat.LoadStatus(ctx)
		if err != nil {
			return err
		}
		return c.printJSON(st)
	}

	req := &model.ChatRequest{Prompt: strings.Join(fs.Args(), " ")}
	if fs.Changed("max-tokens") {
		req.MaxTokens = maxTokens
	}

	msg, err := c.app.Chat.Send(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, msg.Response)
	return nil
}

func runGoals(ctx context.Context, c *cli, args []string) error {
	sub, rest := "list", args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, rest = args[0], args[1:]
	}

	userID, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	fs := newFlags("goals " + sub)
	switch sub {
	case "list":
		if err := fs.Parse(rest); err != nil {
			return err
		}
		goals, err := c.app.Goals.Load(ctx, userID)
		if err != nil {
			return err
		}
		return c.printJSON(goals)

	case "add":
		goalType := fs.String("type", "", "goal type")
		title := fs.String("title", "", "title")
		description := fs.String("description", "", "description")
		target := fs.Float64("target", 0, "target value")
		unit := fs.String("unit", "", "unit of the target")
		until := fs.String("until", "", "target date YYYY-MM-DD")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		targetDate, err := parseDate("until", *until)
		if err != nil {
			return err
		}
		goal, err := c.app.Goals.Create(ctx, &model.HealthGoal{
			UserID:      userID,
			Type:        model.GoalType(*goalType),
			Title:       *title,
			Description: *description,
			TargetValue: *target,
			Unit:        *unit,
			TargetDate:  types.Date{Time: targetDate},
		})
		if err != nil {
			return err
		}
		return c.printJSON(goal)

	case "progress":
		id := fs.String("id", "", "goal id")
		value := fs.Float64("value", 0, "current value")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		goal, err := c.app.Goals.UpdateProgress(ctx, *id, *value)
		if err != nil {
			return err
		}
		return c.printJSON(goal)

	case "status":
		id := fs.String("id", "", "goal id")
		status := fs.String("status", "", "active, paused, completed or cancelled")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		goal, err := c.app.Goals.UpdateStatus(ctx, *id, model.GoalStatus(*status))
		if err != nil {
			return err
		}
		return c.printJSON(goal)

	case "delete":
		id := fs.String("id", "", "goal id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return c.app.Goals.Delete(ctx, *id)
	}
	return fmt.Errorf("unknown goals subcommand %q", sub)
}

func runLogs(ctx context.Context, c *cli, args []string) error {
	sub, rest := "list", args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, rest = args[0], args[1:]
	}

	userID, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	fs := newFlags("logs " + sub)
	switch sub {
	case "list":
		logType := fs.String("type", "", "only this log type")
		from := fs.String("from", "", "from date YYYY-MM-DD")
		to := fs.String("to", "", "to date YYYY-MM-DD, inclusive")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		fromDate, err := parseDate("from", *from)
		if err != nil {
			return err
		}
		toDate, err := parseDate("to", *to)
		if err != nil {
			return err
		}
		logs, err := c.app.Logs.Load(ctx, usecase.GetUserLogsInput{
			UserID: userID,
			Filter: model.LogFilter{Type: model.LogType(*logType), From: fromDate, To: endOfDay(toDate)},
		})
		if err != nil {
			return err
		}
		return c.printJSON(logs)

	case "add":
		logType := fs.String("type", "", "log type")
		value := fs.Float64("value", 0, "value, systolic for blood pressure")
		secondary := fs.Float64("secondary", 0, "diastolic for blood pressure")
		unit := fs.String("unit", "", "unit")
		notes := fs.String("notes", "", "notes")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		entry := &model.HealthLog{
			UserID: userID,
			Type:   model.LogType(*logType),
			Value:  *value,
			Unit:   *unit,
			Notes:  *notes,
		}
		if fs.Changed("secondary") {
			entry.SecondaryValue = secondary
		}
		logged, err := c.app.Logs.Log(ctx, entry)
		if err != nil {
			return err
		}
		return c.printJSON(logged)

	case "delete":
		id := fs.String("id", "", "log id")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		return c.app.Logs.Delete(ctx, *id)
	}
	return fmt.Errorf("unknown logs subcommand %q", sub)
}

func runProfile(ctx context.Context, c *cli, args []string) error {
	sub, rest := "show", args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, rest = args[0], args[1:]
	}

	userID, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	switch sub {
	case "show":
		profile, err := c.app.Profile.Load(ctx)
		if err != nil {
			return err
		}
		if profile == nil {
			fmt.Fprintln(c.out, "no profile yet, run `eva profile set`")
			return nil
		}
		return c.printJSON(profile)

	case "set":
		fs := newFlags("profile set")
		age := fs.Int("age", 0, "age in years")
		gender := fs.String("gender", "", "male, female, other or prefer_not_to_say")
		height := fs.Float64("height", 0, "height")
		heightUnit := fs.String("height-unit", model.UnitCentimeters, "cm or in")
		weight := fs.Float64("weight", 0, "weight")
		weightUnit := fs.String("weight-unit", model.UnitKilograms, "kg or lb")
		activity := fs.String("activity", "", "activity level")
		conditions := fs.StringSlice("condition", nil, "health condition, repeatable")
		medications := fs.StringSlice("medication", nil, "medication, repeatable")
		allergies := fs.StringSlice("allergy", nil, "allergy, repeatable")
		if err := fs.Parse(rest); err != nil {
			return err
		}

		profile := &model.UserProfile{
			UserID:           userID,
			Age:              *age,
			Gender:           model.Gender(*gender),
			Height:           *height,
			HeightUnit:       *heightUnit,
			Weight:           *weight,
			WeightUnit:       *weightUnit,
			ActivityLevel:    model.ActivityLevel(*activity),
			HealthConditions: *conditions,
			Medications:      *medications,
			Allergies:        *allergies,
		}

		existing, err := c.app.Profile.Load(ctx)
		if err != nil {
			return err
		}
		if existing == nil {
			res, err := c.app.Profile.CompleteOnboarding(ctx, usecase.OnboardingInput{Profile: profile})
			if err != nil {
				return err
			}
			return c.printJSON(res.Profile)
		}

		updated, err := c.app.Profile.Update(ctx, profile)
		if err != nil {
			return err
		}
		return c.printJSON(updated)
	}
	return fmt.Errorf("unknown profile subcommand %q", sub)
}

func runMood(ctx context.Context, c *cli, args []string) error {
	sub, rest := "checkin", args
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		sub, rest = args[0], args[1:]
	}

	userID, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	switch sub {
	case "checkin":
		flow := usecase.NewCheckInFlow()
		scanner := bufio.NewScanner(c.in)
		for q := flow.NextQuestion(); q != nil; q = flow.NextQuestion() {
			prompt := q.Text
			if len(q.Choices) > 0 {
				prompt += " [" + strings.Join(q.Choices, "/") + "]"
			}

			// ask again until the answer is accepted
			for {
				fmt.Fprintf(c.out, "%s ", prompt)
				if !scanner.Scan() {
					if err := scanner.Err(); err != nil {
						return fmt.Errorf("failed to read answer: %w", err)
					}
					return fmt.Errorf("check-in aborted")
				}
				err := flow.Answer(q.ID, scanner.Text())
				if err == nil {
					break
				}
				fmt.Fprintln(c.out, viewmodel.Message(err))
			}
		}

		checkIn, err := c.app.Mood.RecordFlow(ctx, flow, userID)
		if err != nil {
			return err
		}
		return c.printJSON(checkIn)

	case "history":
		fs := newFlags("mood history")
		from := fs.String("from", "", "from date YYYY-MM-DD")
		to := fs.String("to", "", "to date YYYY-MM-DD, inclusive")
		if err := fs.Parse(rest); err != nil {
			return err
		}
		fromDate, err := parseDate("from", *from)
		if err != nil {
			return err
		}
		toDate, err := parseDate("to", *to)
		if err != nil {
			return err
		}
		history, err := c.app.Mood.Load(ctx, usecase.GetMoodHistoryInput{UserID: userID, From: fromDate, To: endOfDay(toDate)})
		if err != nil {
			return err
		}
		return c.printJSON(history)
	}
	return fmt.Errorf("unknown mood subcommand %q", sub)
}

func runReport(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("report")
	from := fs.String("from", "", "from date YYYY-MM-DD")
	to := fs.String("to", "", "to date YYYY-MM-DD, inclusive")
	if err := fs.Parse(args); err != nil {
		return err
	}

	user, err := c.app.Auth.Restore(ctx)
	if err != nil {
		return err
	}
	if user == nil {
		return errNotSignedIn
	}

	fromDate, err := parseDate("from", *from)
	if err != nil {
		return err
	}
	toDate, err := parseDate("to", *to)
	if err != nil {
		return err
	}

	name := user.FullName
	if name == "" {
		name = user.Username
	}

	res, err := c.app.ExportReport.Execute(ctx, usecase.ExportHealthReportInput{
		UserID:   user.ID,
		UserName: name,
		From:     fromDate,
		To:       endOfDay(toDate),
	})
	if err != nil {
		return err
	}
	return c.printJSON(res)
}

func runExportData(ctx context.Context, c *cli, args []string) error {
	userID, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	data, err := c.app.ExportLocalData.Execute(ctx, userID)
	if err != nil {
		return err
	}
	_, err = c.out.Write(append(data, '\n'))
	return err
}

func runEraseData(ctx context.Context, c *cli, args []string) error {
	fs := newFlags("erase-data")
	confirm := fs.Bool("confirm", false, "confirm that all local data should be erased")
	if err := fs.Parse(args); err != nil {
		return err
	}

	userID, err := c.requireUser(ctx)
	if err != nil {
		return err
	}

	if err := c.app.EraseLocalData.Execute(ctx, userID, *confirm); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "local data erased")
	return nil
}

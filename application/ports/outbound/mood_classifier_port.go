package outbound

import "context"

type MoodClassifierPort interface {
	Classify(ctx context.Context, dreamText string) (string, error)
}

package month

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "конец января в високосный февраль",
			start:  date(2024, time.January, 31),
			months: 1,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "конец января в обычный февраль",
			start:  date(2023, time.January, 31),
			months: 1,
			want:   date(2023, time.February, 28),
		},
		{
			name:   "обычный день без прижатия",
			start:  date(2024, time.January, 15),
			months: 1,
			want:   date(2024, time.February, 15),
		},
		{
			name:   "31 августа в 30 сентября",
			start:  date(2024, time.August, 31),
			months: 1,
			want:   date(2024, time.September, 30),
		},
		{
			name:   "год подписки с переходом года",
			start:  date(2024, time.October, 10),
			months: 12,
			want:   date(2025, time.October, 10),
		},
		{
			name:   "ноль месяцев",
			start:  date(2024, time.March, 31),
			months: 0,
			want:   date(2024, time.March, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.start, tt.months))
		})
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		name    string
		period  string
		want    int
		wantErr bool
	}{
		{name: "один месяц", period: "1 month", want: 1},
		{name: "двенадцать месяцев", period: "12 month", want: 12},
		{name: "форма во множественном числе", period: "3 months", want: 3},
		{name: "без пробела", period: "6month", want: 6},
		{name: "нет числа", period: "month", wantErr: true},
		{name: "мусор", period: "abc", wantErr: true},
		{name: "пустая строка", period: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePeriod(tt.period)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrBadPeriod)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

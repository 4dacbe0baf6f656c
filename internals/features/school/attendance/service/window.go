// file: internals/features/school/attendance/service/window.go
package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

/* =========================
   Window Calculator

   Jendela kelayakan relatif jadwal:
   - buka  : start_time − 40 menit (boleh roll ke hari sebelumnya)
   - tutup : end_time   + 60 menit (boleh roll ke hari berikutnya)
   - telat : start_time + 15 menit

   Murni: tanpa side effect; satu-satunya kegagalan adalah
   string jam yang malformed (caller memperlakukannya sebagai
   "tidak ada jadwal").
========================= */

const (
	windowOpenBeforeStartMin = 40
	windowCloseAfterEndMin   = 60
	lateAfterStartMin        = 15
)

type AttendanceWindow struct {
	WindowStart   time.Time
	WindowEnd     time.Time
	LateThreshold time.Time
}

// Contains: true bila t berada di dalam [WindowStart, WindowEnd].
func (w AttendanceWindow) Contains(t time.Time) bool {
	return !t.Before(w.WindowStart) && !t.After(w.WindowEnd)
}

// IsLate: true bila t melewati ambang telat.
func (w AttendanceWindow) IsLate(t time.Time) bool {
	return t.After(w.LateThreshold)
}

// ParseClockMinutes mengubah "HH:MM" / "HH:MM:SS" menjadi offset menit dari
// tengah malam. Presisi detik dibuang (presisi jadwal adalah menit).
func ParseClockMinutes(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("jam tidak valid: %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("jam tidak valid: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("jam tidak valid: %q", s)
	}
	return h*60 + m, nil
}

// BuildWindow menghitung jendela kelayakan untuk satu tanggal kalender
// (refDate, dibaca Y/M/D-nya) pada zona waktu loc. Aritmetika rollover
// hari eksplisit: offset menit negatif/di atas 24 jam jatuh ke hari
// sebelum/sesudahnya lewat time.Add.
func BuildWindow(startClock, endClock string, refDate time.Time, loc *time.Location) (*AttendanceWindow, error) {
	startMin, err := ParseClockMinutes(startClock)
	if err != nil {
		return nil, err
	}
	endMin, err := ParseClockMinutes(endClock)
	if err != nil {
		return nil, err
	}

	midnight := time.Date(refDate.Year(), refDate.Month(), refDate.Day(), 0, 0, 0, 0, loc)
	return &AttendanceWindow{
		WindowStart:   midnight.Add(time.Duration(startMin-windowOpenBeforeStartMin) * time.Minute),
		WindowEnd:     midnight.Add(time.Duration(endMin+windowCloseAfterEndMin) * time.Minute),
		LateThreshold: midnight.Add(time.Duration(startMin+lateAfterStartMin) * time.Minute),
	}, nil
}

/* =========================
   Util tanggal
========================= */

// DateOnly menormalkan timestamp ke tengah malam UTC pada tanggal
// kalendernya di loc — bentuk kanonik attendance_date di DB.
func DateOnly(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween: selisih hari kalender (b − a), keduanya sudah dinormalkan
// DateOnly.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

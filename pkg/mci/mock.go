package mci

import (
	"strconv"
	"time"
)

// Mock supplies the values of info codes and positional parameters. In the
// BBS these come from the session; here they are sample data for previews.
type Mock struct {
	SystemName string `yaml:"system_name"`
	SysopName  string `yaml:"sysop_name"`

	UserName      string `yaml:"user_name"`
	UserAlias     string `yaml:"user_alias"`
	UserCity      string `yaml:"user_city"`
	UserPhone     string `yaml:"user_phone"`
	UserDataPhone string `yaml:"user_data_phone"`
	UserNumber    int    `yaml:"user_number"`

	TimesCalled int `yaml:"times_called"`
	CallsToday  int `yaml:"calls_today"`
	MsgsPosted  int `yaml:"msgs_posted"`
	KBDown      int `yaml:"kb_down"`
	KBUp        int `yaml:"kb_up"`
	FilesDown   int `yaml:"files_down"`
	FilesUp     int `yaml:"files_up"`
	KBDownToday int `yaml:"kb_down_today"`
	TimeLeft    int `yaml:"time_left"`
	ScreenLen   int `yaml:"screen_len"`

	Terminal     string `yaml:"terminal"`
	MsgArea      string `yaml:"msg_area"`
	MsgAreaDesc  string `yaml:"msg_area_desc"`
	FileArea     string `yaml:"file_area"`
	FileAreaDesc string `yaml:"file_area_desc"`

	// Params are the values of positional parameters |!1 to |!F.
	Params []string `yaml:"params"`

	// Now is the time shown by the date and time codes. If zero, the current
	// time is used.
	Now time.Time `yaml:"now"`
}

// DefaultMock returns sample values for every field.
func DefaultMock() *Mock {
	return &Mock{
		SystemName:    "Maximus BBS",
		SysopName:     "Sysop",
		UserName:      "John Doe",
		UserAlias:     "JDoe",
		UserCity:      "Anytown, USA",
		UserPhone:     "555-555-1234",
		UserDataPhone: "555-555-5678",
		UserNumber:    1,
		TimesCalled:   42,
		CallsToday:    3,
		MsgsPosted:    17,
		KBDown:        1024,
		KBUp:          256,
		FilesDown:     12,
		FilesUp:       4,
		KBDownToday:   64,
		TimeLeft:      60,
		ScreenLen:     24,
		Terminal:      "ANSI",
		MsgArea:       "MUFFIN",
		MsgAreaDesc:   "General Discussion",
		FileArea:      "UPLOADS",
		FileAreaDesc:  "New Uploads",
		Params: []string{"Param1", "Param2", "Param3", "Param4", "Param5",
			"Param6", "Param7", "Param8", "Param9", "ParamA", "ParamB", "ParamC",
			"ParamD", "ParamE", "ParamF"},
	}
}

// Param returns the value of positional parameter i, counting from 0, or ""
// if it is not set.
func (m *Mock) Param(i int) string {
	if i < 0 || i >= len(m.Params) {
		return ""
	}
	return m.Params[i]
}

func (m *Mock) now() time.Time {
	if m.Now.IsZero() {
		return time.Now()
	}
	return m.Now
}

// info returns the value of an info code, and whether the code is known.
func (m *Mock) info(code string) (string, bool) {
	itoa := strconv.Itoa
	switch code {
	case "BN":
		return m.SystemName, true
	case "SN":
		return m.SysopName, true
	case "UN", "UR":
		return m.UserName, true
	case "UH":
		return m.UserAlias, true
	case "UC":
		return m.UserCity, true
	case "UP":
		return m.UserPhone, true
	case "UD":
		return m.UserDataPhone, true
	case "CS":
		return itoa(m.TimesCalled), true
	case "CT":
		return itoa(m.CallsToday), true
	case "MP":
		return itoa(m.MsgsPosted), true
	case "DK":
		return itoa(m.KBDown), true
	case "FK":
		return itoa(m.KBUp), true
	case "DL":
		return itoa(m.FilesDown), true
	case "FU":
		return itoa(m.FilesUp), true
	case "DT":
		return itoa(m.KBDownToday), true
	case "TL":
		return itoa(m.TimeLeft), true
	case "US":
		return itoa(m.ScreenLen), true
	case "TE":
		return m.Terminal, true
	case "MB":
		return m.MsgArea, true
	case "MD":
		return m.MsgAreaDesc, true
	case "FB":
		return m.FileArea, true
	case "FD":
		return m.FileAreaDesc, true
	case "DA":
		return m.now().Format("01-02-06"), true
	case "TM":
		return m.now().Format("15:04"), true
	case "TS":
		return m.now().Format("15:04:05"), true
	}
	return "", false
}

package config

import (
	"io/fs"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "EYA Attendance"
	AppID       = "com.github.tartampluch.eya-attendance"
	AppUse      = "eya-attendance <attendance-export.csv>"
	AppShort    = "Derive roster and outreach reports from a weekly attendance export"
	LogFileName = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

// One code per pipeline stage so wrapper scripts can tell failures apart.
const (
	ExitCodeSuccess       = 0
	ExitCodeArgs          = 1
	ExitCodeInvalidInput  = 2
	ExitCodeHeaderRead    = 3
	ExitCodeHeaderParse   = 4
	ExitCodeRoster        = 5
	ExitCodeAbsence       = 6
	ExitCodeReportWrite   = 7
	ExitCodeOutreachWrite = 8
	ExitCodeExportWrite   = 9
	ExitCodeConfiguration = 10
)

// ExpectedArgumentCount is the number of positional arguments (the export).
const ExpectedArgumentCount = 1

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for the log file.
	FilePermUserRW fs.FileMode = 0600

	// FilePermReport represents -rw-r--r--. Reports are meant to be shared.
	FilePermReport fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug        = "debug"
	FlagOutDir       = "out-dir"
	FlagLabels       = "labels"
	FlagCalendar     = "calendar"
	FlagVCard        = "vcard"
	FlagNoWait       = "no-wait"
	FlagDescDebug    = "Enable debug logging"
	FlagDescOutDir   = "Directory the reports are written to (default: current directory)"
	FlagDescLabels   = "YAML or JSON file overriding role, action and column labels"
	FlagDescCalendar = "Also write an outreach calendar (.ics)"
	FlagDescVCard    = "Also write the outreach contacts (.vcf)"
	FlagDescNoWait   = "Do not wait for Enter before exiting"
	VersionTemplate  = "{{.Name}} version {{.Version}}\n"
	FormatVersion    = "%s (commit %s, built %s, %s/%s)"
)

// -----------------------------------------------------------------------------
// Input Export Format
// -----------------------------------------------------------------------------

const (
	// Fixed identity columns of the export header.
	HeaderFirstName = "first name"
	HeaderLastName  = "last name"
	HeaderPercent   = "percent"

	// IdentityColumns is the number of leading columns that are never events.
	IdentityColumns = 3

	// Event headers are month/day/year.
	DateSeparator = "/"
	DateParts     = 3

	// Raw attendance cell values.
	CellMembershipRemoved = "membership removed"
	CellNotTaken          = "attendance not taken"
	CellMember            = "attended as member"
	CellLeader            = "attended as leader"
	CellVisitor           = "attended as visitor"
	CellAbsent            = ""

	ExtCSV = ".csv"
)

// Input file name convention:
// attendance-report-young-adults-yyyy-mm-dd-yyyy-mm-dd.csv
const (
	FileNameSeparator   = "-"
	FileNameTokenCount  = 10
	FileNameDateStart   = 7
	DateFormatFileName  = "2006-01-02"
	FileNameNoDateHint  = "attendance-report-young-adults-yyyy-mm-dd-yyyy-mm-dd.csv"
	ReportBaseName      = "report"
	OutreachBaseName    = "outreach"
	CalendarBaseName    = "outreach"
	ContactsBaseName    = "outreach"
	ExtICS              = ".ics"
	ExtVCF              = ".vcf"
	ExtBackup           = ".bak"
	OutputNameSeparator = "-"
)

// FileNamePrefix holds the leading tokens of the input file name convention.
var FileNamePrefix = []string{"attendance", "report", "young", "adults"}

// -----------------------------------------------------------------------------
// Absence Tracking & Outreach Ladder
// -----------------------------------------------------------------------------

const (
	// WeeksAbsentUntracked is seeded before first attendance and after a reset.
	WeeksAbsentUntracked = 99

	// LadderExhaustedAfter is the streak length that marks the ladder as done.
	LadderExhaustedAfter = 5

	WeeksAbsentText     = 2
	WeeksAbsentPostCard = 3
	WeeksAbsentCall     = 4
	WeeksAbsentVisit    = 5

	// OutreachFollowUpDays offsets calendar entries from the last event date.
	OutreachFollowUpDays = 1
)

// -----------------------------------------------------------------------------
// Label Message IDs (go-i18n)
// -----------------------------------------------------------------------------

const (
	LabelLocaleFile = "locales/active.en.json"
	LabelLanguage   = "en"

	LKeyRoleNA      = "role_na"
	LKeyRoleMember  = "role_member"
	LKeyRoleLeader  = "role_leader"
	LKeyRoleVisitor = "role_visitor"

	LKeyActionText     = "action_text"
	LKeyActionPostCard = "action_post_card"
	LKeyActionCall     = "action_phone_call"
	LKeyActionVisit    = "action_visit"

	LKeyColFirstName  = "col_first_name"
	LKeyColLastName   = "col_last_name"
	LKeyColMemberType = "col_member_type"
	LKeyColAction     = "col_action"

	LKeyEventSummary = "event_summary"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//EYA Attendance//Outreach//EN"
	ICalCalName = "Outreach"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "eya-attendance"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"
	PropCategories = "CATEGORIES"

	VCardVersion = "4.0"

	UIDSalt         = "eya-attendance-v1-"
	UIDHashLength   = 16
	FormatHashInput = "%d|%s|%s|%s|%s"
	FormatUID       = "%s@%s"

	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidInputFile = "invalid input file"
	ErrFileMissing      = "file does not exist"
	ErrFileNotCSV       = "file is not a .csv file"
	ErrFileIsDir        = "path is a directory"
	ErrHeaderFormat     = "malformed header row"
	ErrHeaderEmpty      = "header row is empty"
	ErrHeaderTooShort   = "header row has no event columns"
	ErrHeaderIdentity   = "header must start with first name, last name, percent"
	ErrHeaderRead       = "failed reading header row"
	ErrRowParse         = "failed parsing attendance row"
	ErrRowTooShort      = "row is missing identity columns"
	ErrWeeksMismatch    = "attendance weeks do not match event columns"
	ErrOutputWrite      = "failed writing output file"
	ErrOutputBackup     = "failed setting aside previous output"
	ErrCSVEncode        = "failed to encode CSV"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrVCardEncode      = "failed to encode vCard data"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrLocaleLoad       = "failed to load locale file"
	ErrLabelsFile       = "failed to load labels file"
	ErrLabelUnknown     = "unknown label id"
	ErrLabelEmpty       = "label text is empty"
	ErrEnvParse         = "failed to parse environment"
)

// -----------------------------------------------------------------------------
// User Messages
// -----------------------------------------------------------------------------

const (
	MsgUsage          = "Please include a valid Planning Center attendance .csv export (drag-drop onto the executable)"
	MsgInvalidInput   = "Failed doing basic validation on input file\nPlease provide a valid Planning Center attendance .csv export"
	MsgNoFileDate     = "Failed extracting date from file name, output reports will have a generic name\nProvide an attendance report in the format \"%s\"\n"
	MsgHeaderRead     = "Failed opening input file to grab header row"
	MsgHeaderParse    = "Failed tokenizing the header row"
	MsgRoster         = "Failed to create a class roll from the attendance rows"
	MsgAbsence        = "Failed to count the number of absent weeks"
	MsgReportWrite    = "Failed creating an output report file"
	MsgOutreachWrite  = "Failed creating an output outreach file"
	MsgExportWrite    = "Failed creating an outreach export file"
	MsgConfiguration  = "Failed loading configuration"
	MsgSuccess        = "Reports created successfully"
	MsgPressEnter     = "Press Enter to continue..."
	MsgDroppedInvalid = "Erased %d event(s) that were not on Sunday or an invalid date format\n"
	MsgDroppedDup     = "Erased %d event(s) that were on Sunday, but probably were not Sunday School\n"
	MsgLogWarning     = "Warning: %s at %s: %v\n"

	MsgAppStarting     = "Starting run"
	MsgAppStop         = "Run finished"
	MsgRunFailed       = "Run failed"
	MsgHeaderDropped   = "Dropped event columns"
	MsgHeaderKept      = "Canonical event columns"
	MsgRosterBuilt     = "Class roll built"
	MsgAbsenceCounted  = "Absent weeks counted"
	MsgFileWritten     = "Output file written"
	MsgRollback        = "Removed partially written output"
	MsgRestored        = "Restored previous output"
	MsgNoEventColumns  = "No event columns survived canonicalization"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgLabelsOverride  = "Label overrides applied"
	MsgTransMissing    = "Missing label"
	MsgFileNameNoDate  = "Input file name does not carry a report date"
	MsgFileNameDate    = "Report date extracted from input file name"
	MsgOutreachSummary = "Outreach list assembled"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyCount     = "count"
	LogKeyReason    = "reason"
	LogKeyColumns   = "columns"
	LogKeyFirst     = "first"
	LogKeyLast      = "last"
	LogKeyPersons   = "persons"
	LogKeyOutreach  = "outreach"
	LogKeyProcessed = "processed_through_ladder"
	LogKeyDate      = "date"
	LogKeyExitCode  = "exit_code"
	LogKeyDuration  = "duration_ms"
	LogKeySizeBytes = "size_bytes"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// Drop reasons reported by the header canonicalizer.
const (
	ReasonNotSunday = "invalid_or_not_sunday"
	ReasonDuplicate = "duplicate_date"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain   = "main"
	CompEngine = "engine"
	CompReport = "report"
	CompLabels = "labels"
)

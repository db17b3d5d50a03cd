package api

type ReportRequest struct {
	CSVPath    string `json:"csv_path"`
	ExcelPath  string `json:"excel_path,omitempty"`
	OutputPath string `json:"output_path"`
}

type ReportResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type LevelCount struct {
	Level   int    `json:"level"`
	Trend   string `json:"trend"`
	Annual  int    `json:"annual"`
	Monthly []int  `json:"monthly"`
}

type YearSummary struct {
	Year   int          `json:"year"`
	Levels []LevelCount `json:"levels"`
}

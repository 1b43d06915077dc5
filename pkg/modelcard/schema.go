// pkg/modelcard/schema.go
package modelcard

// ModelCard describes the model the artifacts were exported from: how it
// was selected and how it and its competitors scored on the test split.
type ModelCard struct {
	Version           string      `json:"version"`
	BestModel         string      `json:"bestModel"`
	DisplayName       string      `json:"displayName"`
	SelectionCriteria string      `json:"selectionCriteria"`
	Metrics           Metrics     `json:"metrics"`
	Comparison        []Candidate `json:"comparison"`
	Training          Training    `json:"training"`
}

type Metrics struct {
	TestR2   float64 `json:"testR2"`
	TestMSE  float64 `json:"testMSE"`
	TestRMSE float64 `json:"testRMSE"`
}

// Candidate is one model evaluated during selection.
type Candidate struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	TestMSE float64 `json:"testMSE"`
	TestR2  float64 `json:"testR2"`
}

type Training struct {
	TrainingSamples int `json:"trainingSamples"`
	TestSamples     int `json:"testSamples"`
}

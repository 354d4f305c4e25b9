package model

type Health struct {
	Status           string `json:"status"`
	DatasetAvailable bool   `json:"dataset_available"`
	DatasetPath      string `json:"dataset_path"`
}

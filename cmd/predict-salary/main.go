// cmd/predict-salary/main.go
package main

import "salary-predictor/internal/cli"

func main() {
	cli.Execute()
}

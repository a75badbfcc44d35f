package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/verifywire/verifywire-go/pkg/apperrors"
	"github.com/verifywire/verifywire-go/pkg/types"
)

func readReceiptFile(path string) (*types.SignedAttestation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Input(fmt.Sprintf("Could not read %s.", path), err)
	}
	var receipt types.SignedAttestation
	if err := json.Unmarshal(data, &receipt); err != nil {
		return nil, apperrors.Input(fmt.Sprintf("%s is not a receipt file.", path), err)
	}
	return &receipt, nil
}

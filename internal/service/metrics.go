package service

import "github.com/dtroode/subspace-wallet/internal/model"

type noopMetrics struct{}

func (noopMetrics) KeyOperation(model.KeyOp, bool) {}
func (noopMetrics) RecordOperation(model.RecordOp) {}
func (noopMetrics) ContractUsage(int64, int)       {}

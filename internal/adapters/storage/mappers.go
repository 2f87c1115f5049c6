package storage

import "tally/internal/domain"

func recordToModel(r domain.FetchRecord) FetchRecordModel {
	return FetchRecordModel{
		DerivedPath: r.DerivedPath,
		Error:       r.Error,
		FinishedAt:  r.FinishedAt.UTC(),
		RunID:       r.RunID,
		StartedAt:   r.StartedAt.UTC(),
		Status:      string(r.Status),
		URI:         r.URI,
	}
}

func modelToRecord(m FetchRecordModel) domain.FetchRecord {
	return domain.FetchRecord{
		DerivedPath: m.DerivedPath,
		Error:       m.Error,
		FinishedAt:  m.FinishedAt,
		RunID:       m.RunID,
		StartedAt:   m.StartedAt,
		Status:      domain.FetchStatus(m.Status),
		URI:         m.URI,
	}
}

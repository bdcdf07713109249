package mapping

import (
	"database/sql"

	"github.com/SscSPs/bank_ledger/internal/core/domain"
	"github.com/SscSPs/bank_ledger/internal/models"
)

// ToModelTransfer converts a domain Transfer to a model Transfer
func ToModelTransfer(d domain.Transfer) models.Transfer {
	return models.Transfer{
		TransferID:    d.ID,
		FromAccountID: toNullInt64(d.FromAccountID),
		ToAccountID:   toNullInt64(d.ToAccountID),
		Name:          d.Name,
		CurrencyID:    d.CurrencyID,
		Value:         d.Value,
		TransferDate:  d.TransferDate,
	}
}

// ToDomainTransfer converts a model Transfer to a domain Transfer
func ToDomainTransfer(m models.Transfer) domain.Transfer {
	return domain.Transfer{
		ID:            m.TransferID,
		FromAccountID: fromNullInt64(m.FromAccountID),
		ToAccountID:   fromNullInt64(m.ToAccountID),
		Name:          m.Name,
		CurrencyID:    m.CurrencyID,
		Value:         m.Value,
		TransferDate:  m.TransferDate,
	}
}

// ToDomainTransferSlice converts a slice of model Transfers to a slice of domain Transfers
func ToDomainTransferSlice(ms []models.Transfer) []domain.Transfer {
	ds := make([]domain.Transfer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransfer(m)
	}
	return ds
}

func toNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func fromNullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

package domain

import "github.com/shopspring/decimal"

// The seed dataset is used for any collection the store has nothing for.
// Each call returns fresh slices so callers may mutate them.

func SeedSettings() CompanySettings {
	return CompanySettings{
		Name:          "DGN NETWORK",
		Address:       "Jl. Teknologi No. 123, Digital Valley",
		Phone:         "0812-3456-7890",
		BankName:      "BCA",
		AccountNumber: "1234567890",
		AccountHolder: "DGN Official",
		DirectorName:  "Bpk. Admin DGN",
	}
}

func SeedInvestors() []Investor {
	return []Investor{
		{ID: "1", Name: "Investor A", SharePercentage: decimal.NewFromInt(30)},
		{ID: "2", Name: "Investor B", SharePercentage: decimal.NewFromInt(20)},
	}
}

func SeedCustomers() []Customer {
	lastPaid := "2023-10-10"
	return []Customer{
		{
			ID:                     "C001",
			Name:                   "Budi Santoso",
			Phone:                  "628123456789",
			Type:                   SubscriptionPPPoE,
			DueDate:                5,
			MonthlyFee:             decimal.NewFromInt(150000),
			AccumulatedDebt:        decimal.Zero,
			RemainingAnnualBalance: decimal.Zero,
			Status:                 StatusUnpaid,
		},
		{
			ID:                     "C002",
			Name:                   "Warung Kopi Javanica",
			Phone:                  "628198765432",
			Type:                   SubscriptionHotspot,
			DueDate:                10,
			MonthlyFee:             decimal.NewFromInt(300000),
			AccumulatedDebt:        decimal.Zero,
			RemainingAnnualBalance: decimal.Zero,
			Status:                 StatusPaid,
			LastPaymentDate:        &lastPaid,
		},
	}
}

// SeedTransactions keeps the order the dataset was first published in.
func SeedTransactions() []Transaction {
	c002 := "C002"
	return []Transaction{
		{
			ID:          "T001",
			Date:        "2023-10-01",
			Description: "Modal Awal Bulan",
			Amount:      decimal.NewFromInt(5000000),
			Type:        Income,
			Method:      MethodTransfer,
			Category:    "Capital",
		},
		{
			ID:          "T002",
			Date:        "2023-10-05",
			Description: "Biaya Maintenance Server",
			Amount:      decimal.NewFromInt(750000),
			Type:        Expense,
			Method:      MethodTransfer,
			Category:    "Maintenance",
		},
		{
			ID:          "T003",
			Date:        "2023-10-10",
			Description: "Pembayaran C002 - Warung Kopi",
			Amount:      decimal.NewFromInt(300000),
			Type:        Income,
			Method:      MethodCash,
			Category:    CategoryBillPayment,
			CustomerID:  &c002,
		},
	}
}

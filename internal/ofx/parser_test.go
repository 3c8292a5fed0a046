package ofx

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pennywise-app/pennywise/internal/common"
	"github.com/pennywise-app/pennywise/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>USD
<BANKACCTFROM>
<BANKID>123456789
<ACCTID>1234567890
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240101120000[0:GMT]
<DTEND>20240131120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240115120000[0:GMT]
<TRNAMT>-25.50
<FITID>2024011501
<NAME>STARBUCKS STORE #1234
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240120120000[0:GMT]
<TRNAMT>-125.00
<FITID>2024012001
<NAME>Whole Foods Market
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240125120000[0:GMT]
<TRNAMT>2500.00
<FITID>2024012501
<NAME>DIRECT DEPOSIT PAYROLL
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20240131120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseFile_BankStatement(t *testing.T) {
	parser := NewParser()
	drafts, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX))
	require.NoError(t, err)
	require.Len(t, drafts, 3)

	assert.Equal(t, "STARBUCKS STORE #1234", drafts[0].Description)
	assert.Equal(t, model.TypeExpense, drafts[0].Type)
	assert.InDelta(t, 25.50, drafts[0].Amount, 0.001)
	assert.Equal(t, 2024, drafts[0].Date.Year())
	assert.Equal(t, time.January, drafts[0].Date.Month())

	assert.Equal(t, model.TypeExpense, drafts[1].Type)
	assert.InDelta(t, 125.00, drafts[1].Amount, 0.001)

	// Credits import as income drafts with positive amounts.
	assert.Equal(t, model.TypeIncome, drafts[2].Type)
	assert.InDelta(t, 2500.00, drafts[2].Amount, 0.001)
	assert.Equal(t, "DIRECT DEPOSIT PAYROLL", drafts[2].Description)
}

func TestParseFile_InvalidContent(t *testing.T) {
	parser := NewParser()
	_, err := parser.ParseFile(context.Background(), strings.NewReader("not an ofx file"))
	assert.ErrorIs(t, err, common.ErrUnsupportedFormat)
}

func TestParseFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	parser := NewParser()
	_, err := parser.ParseFile(ctx, strings.NewReader(sampleBankOFX))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractDescription_StripsPrefixes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"pos purchase prefix", "POS PURCHASE STARBUCKS", "STARBUCKS"},
		{"check card prefix", "CHECK CARD SHELL OIL", "SHELL OIL"},
		{"leading date", "01/15 TRADER JOES", "TRADER JOES"},
		{"plain name", "NETFLIX.COM", "NETFLIX.COM"},
	}

	parser := NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := ofxgo.Transaction{
				Name: ofxgo.String(tt.in),
			}
			assert.Equal(t, tt.want, parser.extractDescription(tx))
		})
	}
}

func TestIsGenericDescription(t *testing.T) {
	assert.True(t, isGenericDescription("DEBIT"))
	assert.True(t, isGenericDescription(" withdrawal "))
	assert.False(t, isGenericDescription("STARBUCKS"))
}
